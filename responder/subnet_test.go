package responder

import (
	"math"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubnetHost(t *testing.T) {
	cases := []struct {
		prefix string
		n      int
		want   string // empty means out of range
	}{
		{"fd00::/64", 0, "fd00::"},
		{"fd00::/64", 1, "fd00::1"},
		{"fd00::/64", 255, "fd00::ff"},
		{"fd00::1234/64", 2, "fd00::2"},
		{"2001:db8::/32", 0x1_0000, "2001:db8::1:0"},
		{"fd00::/120", 255, "fd00::ff"},
		{"fd00::/121", 127, "fd00::7f"},
		{"fd00::/121", 128, ""},
		{"fd00::100/120", 0x100, ""},
		{"fd00::/127", 1, "fd00::1"},
		{"fd00::/127", 2, ""},
		{"fd00::5/128", 0, "fd00::5"},
		{"fd00::5/128", 1, ""},
		{"::/0", math.MaxInt64, "::7fff:ffff:ffff:ffff"},
		{"fd00::/64", -1, ""},
	}

	for _, c := range cases {
		s := mustSubnet(t, c.prefix)
		got, ok := s.Host(c.n)
		if c.want == "" {
			assert.False(t, ok, "%s #%d gave %s", c.prefix, c.n, got)
			continue
		}
		if assert.True(t, ok, "%s #%d", c.prefix, c.n) {
			assert.Equal(t, netip.MustParseAddr(c.want), got, "%s #%d", c.prefix, c.n)
		}
	}
}

func TestSubnetHostDeterministic(t *testing.T) {
	s := mustSubnet(t, "2001:db8:1:2::/64")
	for i := 0; i < 256; i++ {
		a, ok := s.Host(i)
		require.True(t, ok)
		b, _ := s.Host(i)
		assert.Equal(t, a, b)
		assert.True(t, s.Prefix().Contains(a))
	}
}

func TestSubnetSize(t *testing.T) {
	assert.Equal(t, uint64(256), mustSubnet(t, "fd00::/120").Size())
	assert.Equal(t, uint64(1), mustSubnet(t, "fd00::/128").Size())
	assert.Equal(t, uint64(1)<<63, mustSubnet(t, "fd00::/65").Size())
	assert.Equal(t, uint64(math.MaxUint64), mustSubnet(t, "fd00::/64").Size())
}

func TestParseSubnet(t *testing.T) {
	s, err := ParseSubnet("fd00:1:2:3:4::9/64")
	require.NoError(t, err)
	assert.Equal(t, "fd00:1:2:3::/64", s.String())

	for _, bad := range []string{"", "fd00::", "10.0.0.0/8", "::ffff:10.0.0.0/104", "fd00::/129"} {
		_, err := ParseSubnet(bad)
		assert.Error(t, err, bad)
	}

	var zero Subnet
	_, ok := zero.Host(0)
	assert.False(t, ok)
}
