package responder

import (
	"encoding/binary"
	"net/netip"
)

// Checksum computes the Internet checksum (RFC 1071) of b. The result is
// meant to be written big endian into the packet. len(b) must be even.
//
// A result of zero is returned as zero; unlike UDP, ICMPv6 has no
// "no checksum" value that would require sending 0xffff instead.
func Checksum(b []byte) uint16 {
	if len(b)%2 != 0 {
		panic("responder: checksum over odd-length buffer")
	}

	var sum uint32
	for i := 0; i < len(b); i += 2 {
		sum += uint32(binary.BigEndian.Uint16(b[i:]))
	}
	for sum > 0xffff {
		sum = (sum >> 16) + (sum & 0xffff)
	}
	return ^uint16(sum)
}

// PseudoHeader builds the 40 byte IPv6 pseudo-header (RFC 8200 8.1) for an
// ICMPv6 message of upperLen bytes.
func PseudoHeader(src, dst netip.Addr, upperLen uint32) []byte {
	b := make([]byte, pseudoHeaderLen)
	s, d := src.As16(), dst.As16()
	copy(b[0:16], s[:])
	copy(b[16:32], d[:])
	binary.BigEndian.PutUint32(b[32:36], upperLen)
	// b[36:39] stay zero
	b[39] = ProtocolICMPv6
	return b
}

// ICMPv6Checksum returns the checksum for icmp sent from src to dst. The
// checksum field inside icmp must already be zero. An odd-length message
// is summed with one trailing zero byte that is never transmitted.
func ICMPv6Checksum(src, dst netip.Addr, icmp []byte) uint16 {
	buf := PseudoHeader(src, dst, uint32(len(icmp)))
	buf = append(buf, icmp...)
	if len(buf)%2 != 0 {
		buf = append(buf, 0)
	}
	return Checksum(buf)
}
