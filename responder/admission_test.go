package responder

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeAddressing(t *testing.T) {
	addr, err := AddrForCode(netip.MustParseAddr("fd00::"), "123456")
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("fd00::12:34:56"), addr)
	assert.Equal(t, "123456", CodeFromAddr(addr))

	// only the low byte of each group counts
	assert.Equal(t, "098765", CodeFromAddr(netip.MustParseAddr("fd00::ff09:ff87:ff65")))

	_, err = AddrForCode(netip.MustParseAddr("fd00::"), "12345")
	assert.Error(t, err)
}

func TestNewTOTPGate(t *testing.T) {
	_, err := NewTOTPGate("")
	assert.Error(t, err)

	_, err = NewTOTPGate("not base32!")
	assert.Error(t, err)
}

func TestTOTPGateAdmit(t *testing.T) {
	gate, err := NewTOTPGate("JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP")
	require.NoError(t, err)

	now := time.Date(2030, 1, 1, 0, 0, 5, 0, time.UTC)
	gate.now = func() time.Time { return now }

	code, err := gate.Code()
	require.NoError(t, err)
	addr, err := AddrForCode(netip.MustParseAddr("2001:db8::"), code)
	require.NoError(t, err)

	assert.True(t, gate.Admit(addr))

	// one period of skew either way
	gate.now = func() time.Time { return now.Add(30 * time.Second) }
	assert.True(t, gate.Admit(addr))
	gate.now = func() time.Time { return now.Add(-30 * time.Second) }
	assert.True(t, gate.Admit(addr))

	gate.now = func() time.Time { return now.Add(time.Hour) }
	assert.False(t, gate.Admit(addr))
}
