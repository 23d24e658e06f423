//go:build linux

package frameio

import (
	"github.com/pkg/errors"
	"github.com/songgao/water"
)

// ipv6Prefix is what the kernel would have put in front of an IPv6 packet
// had the device been opened with packet information: no flags, ETH_P_IPV6.
var ipv6Prefix = [4]byte{0x00, 0x00, 0x86, 0xdd}

// Water is a TUN device opened through songgao/water. water always sets
// IFF_NO_PI, so Water adds a synthetic link prefix on receive and strips it
// on send to present the same frames as TUN.
type Water struct {
	iface *water.Interface
	buf   []byte
}

func OpenWater(name string) (*Water, error) {
	iface, err := water.New(water.Config{
		DeviceType: water.TUN,
		PlatformSpecificParams: water.PlatformSpecificParams{
			Name: name,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", name)
	}

	return &Water{iface: iface, buf: make([]byte, maxFrame)}, nil
}

func (w *Water) Name() string {
	return w.iface.Name()
}

func (w *Water) Receive() ([]byte, error) {
	n, err := w.iface.Read(w.buf[len(ipv6Prefix):])
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", w.Name())
	}
	copy(w.buf, ipv6Prefix[:])
	return w.buf[:len(ipv6Prefix)+n], nil
}

func (w *Water) Send(frame []byte) error {
	if len(frame) < len(ipv6Prefix) {
		return errors.Errorf("frame of %d bytes has no link prefix", len(frame))
	}

	packet := frame[len(ipv6Prefix):]
	n, err := w.iface.Write(packet)
	if err != nil {
		return errors.Wrapf(err, "writing %s", w.Name())
	}
	if n != len(packet) {
		return errors.Errorf("short write to %s: %d of %d bytes", w.Name(), n, len(packet))
	}
	return nil
}

func (w *Water) Close() error {
	return w.iface.Close()
}
