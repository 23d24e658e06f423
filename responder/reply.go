package responder

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"
)

// replyBuilder collects the fields of a Time Exceeded reply and serializes
// them in one go.
type replyBuilder struct {
	prefix []byte
	src    netip.Addr
	dst    netip.Addr
	echo   []byte
}

func newReply(prefix []byte) *replyBuilder {
	return &replyBuilder{prefix: prefix}
}

func (r *replyBuilder) From(src netip.Addr) *replyBuilder {
	r.src = src
	return r
}

func (r *replyBuilder) To(dst netip.Addr) *replyBuilder {
	r.dst = dst
	return r
}

// Echo sets the invoking packet carried in the message body.
func (r *replyBuilder) Echo(packet []byte) *replyBuilder {
	r.echo = packet
	return r
}

// Build returns a freshly allocated frame: link prefix, IPv6 header, ICMPv6
// Time Exceeded message with its checksum filled in.
func (r *replyBuilder) Build() ([]byte, error) {
	buf := gopacket.NewSerializeBuffer()

	network := &layers.IPv6{
		Version:      6,
		TrafficClass: 0,
		FlowLabel:    0,
		NextHeader:   layers.IPProtocolICMPv6,
		HopLimit:     ReplyHopLimit,
		SrcIP:        r.src.AsSlice(),
		DstIP:        r.dst.AsSlice(),
	}

	icmpLayer := &layers.ICMPv6{
		TypeCode: layers.CreateICMPv6TypeCode(ICMPv6TypeTimeExceeded, ICMPv6CodeHopLimitExceeded),
	}

	// checksum is ours to compute, gopacket only fixes up the length
	err := gopacket.SerializeLayers(
		buf,
		gopacket.SerializeOptions{FixLengths: true},
		network,
		icmpLayer,
		&timeExceededBody{Invoking: r.echo},
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	prefix, err := buf.PrependBytes(LinkPrefixLen)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	copy(prefix, r.prefix)

	frame := buf.Bytes()
	r.check(frame)

	msg := frame[MinFrameLen:]
	csum := ICMPv6Checksum(r.src, r.dst, msg)
	binary.BigEndian.PutUint16(msg[icmpChecksumOffset:], csum)
	return frame, nil
}

// check panics if the serialized frame disagrees with what was asked for.
// These are sizing bugs in this package, never bad input.
func (r *replyBuilder) check(frame []byte) {
	want := MinFrameLen + icmpFixedLen + len(r.echo)
	if len(frame) != want {
		panic(fmt.Sprintf("responder: reply is %d bytes, want %d", len(frame), want))
	}

	ip := Packet(frame[LinkPrefixLen:])
	if got := int(ip.PayloadLength()); got != icmpFixedLen+len(r.echo) {
		panic(fmt.Sprintf("responder: payload length field %d, want %d", got, icmpFixedLen+len(r.echo)))
	}
	if got := binary.BigEndian.Uint16(ip.Payload()[icmpChecksumOffset:]); got != 0 {
		panic(fmt.Sprintf("responder: checksum field not zeroed before summing: %#04x", got))
	}
}
