// Package frameio exchanges raw frames with a TUN device.
package frameio

import (
	"io"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
)

// Device is a frame channel as implemented by TUN and Water.
type Device interface {
	Receive() ([]byte, error)
	Send(frame []byte) error
}

const (
	linkPrefixLen = 4
	snapLen       = 65536
)

// Recorder passes frames through to a Device, writing the IP packet of
// each one (without link prefix) to a pcap stream.
type Recorder struct {
	dev Device
	w   *pcapgo.Writer
	now func() time.Time
}

// NewRecorder writes the pcap file header to w straight away.
func NewRecorder(dev Device, w io.Writer) (*Recorder, error) {
	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(snapLen, layers.LinkTypeIPv6); err != nil {
		return nil, errors.Wrap(err, "writing pcap header")
	}
	return &Recorder{dev: dev, w: pw, now: time.Now}, nil
}

func (r *Recorder) Receive() ([]byte, error) {
	frame, err := r.dev.Receive()
	if err != nil {
		return nil, err
	}
	return frame, r.record(frame)
}

func (r *Recorder) Send(frame []byte) error {
	if err := r.record(frame); err != nil {
		return err
	}
	return r.dev.Send(frame)
}

func (r *Recorder) record(frame []byte) error {
	if len(frame) <= linkPrefixLen {
		return nil
	}

	packet := frame[linkPrefixLen:]
	captured := packet
	if len(captured) > snapLen {
		captured = captured[:snapLen]
	}

	err := r.w.WritePacket(gopacket.CaptureInfo{
		Timestamp:     r.now(),
		CaptureLength: len(captured),
		Length:        len(packet),
	}, captured)
	return errors.Wrap(err, "writing pcap record")
}
