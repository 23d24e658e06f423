//go:build linux

package hostcfg

import (
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPNet(t *testing.T) {
	n := ipNet(netip.MustParsePrefix("fd00::1/128"))
	assert.Equal(t, "fd00::1/128", n.String())

	n = ipNet(netip.MustParsePrefix("fd00:1::/64"))
	assert.Equal(t, net.ParseIP("fd00:1::"), n.IP)
	assert.Equal(t, net.CIDRMask(64, 128), n.Mask)
}

func TestApplyMissingInterface(t *testing.T) {
	err := Apply(Config{
		Interface: "ghosthops-nope",
		Network:   netip.MustParsePrefix("fd00::/64"),
		Gateway:   netip.MustParseAddr("fd00::1"),
	})
	assert.ErrorContains(t, err, "looking up ghosthops-nope")
}
