package responder

import (
	"encoding/binary"
	"net/netip"
)

// Frame is a raw frame as read from the TUN device: a 4 byte link prefix
// followed by an IP packet. It aliases the receive buffer and must not be
// retained past the call that handles it.
type Frame []byte

// Prefix returns the opaque link prefix, bytes 0-3.
func (f Frame) Prefix() []byte {
	return f[:LinkPrefixLen]
}

// Packet returns the IP packet that follows the link prefix.
func (f Frame) Packet() Packet {
	return Packet(f[LinkPrefixLen:])
}

// Packet is a read-only view over an IPv6 packet. All accessors assume the
// packet is at least HeaderLen bytes long.
type Packet []byte

// Version is the high nibble of byte 0.
func (p Packet) Version() uint8 {
	return p[0] >> 4
}

// PayloadLength is bytes 4-5, big endian.
func (p Packet) PayloadLength() uint16 {
	return binary.BigEndian.Uint16(p[4:6])
}

// NextHeader is byte 6.
func (p Packet) NextHeader() uint8 {
	return p[6]
}

// HopLimit is byte 7.
func (p Packet) HopLimit() uint8 {
	return p[7]
}

// Source is bytes 8-23.
func (p Packet) Source() netip.Addr {
	return netip.AddrFrom16([16]byte(p[8:24]))
}

// Destination is bytes 24-39.
func (p Packet) Destination() netip.Addr {
	return netip.AddrFrom16([16]byte(p[24:40]))
}

// Payload is everything after the fixed header. Extension headers are not
// interpreted.
func (p Packet) Payload() []byte {
	return p[HeaderLen:]
}
