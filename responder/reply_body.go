package responder

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// timeExceededBody is the part of an ICMPv6 Time Exceeded message that
// follows the 4 byte type/code/checksum header: 4 unused bytes, then as much
// of the invoking packet as we echo back.
type timeExceededBody struct {
	layers.BaseLayer
	Invoking []byte
}

func (t *timeExceededBody) LayerType() gopacket.LayerType {
	return gopacket.LayerTypePayload
}

func (t *timeExceededBody) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	buf, err := b.PrependBytes(icmpFixedLen - 4 + len(t.Invoking))
	if err != nil {
		return err
	}

	// PrependBytes does not zero reused buffers
	buf[0], buf[1], buf[2], buf[3] = 0, 0, 0, 0
	copy(buf[4:], t.Invoking)
	return nil
}
