package responder

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPacketAccessors(t *testing.T) {
	f := Frame(probe("2001:db8::cafe", 42, []byte{9, 8, 7}))

	assert.Equal(t, tunPrefix, f.Prefix())

	p := f.Packet()
	assert.Equal(t, uint8(6), p.Version())
	assert.Equal(t, uint16(3), p.PayloadLength())
	assert.Equal(t, uint8(17), p.NextHeader())
	assert.Equal(t, uint8(42), p.HopLimit())
	assert.Equal(t, netip.MustParseAddr("2001:db8::cafe"), p.Source())
	assert.Equal(t, netip.MustParseAddr(probeDst), p.Destination())
	assert.Equal(t, []byte{9, 8, 7}, p.Payload())
}

func TestPacketVersionIgnoresTrafficClass(t *testing.T) {
	p := Packet(make([]byte, HeaderLen))
	p[0] = 0x6f
	assert.Equal(t, uint8(6), p.Version())
}
