//go:build linux

package frameio

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// maxFrame fits the largest non-jumbo IPv6 packet plus the link prefix.
const maxFrame = 4 + 40 + 0xffff

// TUN is a TUN device opened with packet information, so every frame starts
// with the 4 byte flags/protocol header.
type TUN struct {
	name string
	file *os.File
	buf  []byte
}

// OpenTUN attaches to (or creates) the TUN interface called name.
func OpenTUN(name string) (*TUN, error) {
	fd, err := unix.Open("/dev/net/tun", unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "opening /dev/net/tun")
	}

	ifr, err := unix.NewIfreq(name)
	if err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "interface name %q", name)
	}

	// Flags are stored as a uint16 in the ifreq union. No IFF_NO_PI: we
	// want the prefix.
	ifr.SetUint16(unix.IFF_TUN)
	if err := unix.IoctlIfreq(fd, unix.TUNSETIFF, ifr); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "TUNSETIFF %s", name)
	}

	return &TUN{
		name: ifr.Name(),
		file: os.NewFile(uintptr(fd), "/dev/net/tun"),
		buf:  make([]byte, maxFrame),
	}, nil
}

func (t *TUN) Name() string {
	return t.name
}

// Receive blocks until the kernel hands us a frame. The returned slice is
// reused by the next call.
func (t *TUN) Receive() ([]byte, error) {
	n, err := t.file.Read(t.buf)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", t.name)
	}
	return t.buf[:n], nil
}

// Send writes frame in a single write.
func (t *TUN) Send(frame []byte) error {
	n, err := t.file.Write(frame)
	if err != nil {
		return errors.Wrapf(err, "writing %s", t.name)
	}
	if n != len(frame) {
		return errors.Errorf("short write to %s: %d of %d bytes", t.name, n, len(frame))
	}
	return nil
}

func (t *TUN) Close() error {
	return t.file.Close()
}
