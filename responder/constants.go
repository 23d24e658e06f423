package responder

import (
	"golang.org/x/net/ipv6"
)

const (
	// LinkPrefixLen is the size of the TUN packet information header
	// (2 bytes flags, 2 bytes ethertype) that precedes every IP packet.
	LinkPrefixLen = 4

	// HeaderLen is the size of the fixed IPv6 header.
	HeaderLen = ipv6.HeaderLen

	// MinFrameLen is the shortest frame worth looking at.
	MinFrameLen = LinkPrefixLen + HeaderLen

	// ProtocolICMPv6 is the next-header value for ICMPv6.
	ProtocolICMPv6 = 58

	// ReplyHopLimit is the hop limit of every reply we originate.
	ReplyHopLimit = 64

	// ICMPv6TypeTimeExceeded is the only message type we send (RFC 4443 3.3).
	ICMPv6TypeTimeExceeded = 3

	// ICMPv6CodeHopLimitExceeded is "hop limit exceeded in transit".
	ICMPv6CodeHopLimitExceeded = 0

	// icmpFixedLen covers type, code, checksum and the 4 unused bytes
	// that precede the invoking packet in a Time Exceeded message.
	icmpFixedLen = 8

	// icmpChecksumOffset is the offset of the checksum within the ICMPv6 message.
	icmpChecksumOffset = 2

	pseudoHeaderLen = 40
)
