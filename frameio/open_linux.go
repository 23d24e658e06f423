//go:build linux

package frameio

import (
	"io"

	"github.com/pkg/errors"
)

// Interface is an opened TUN device.
type Interface interface {
	Device
	io.Closer
	Name() string
}

// Open opens the interface called name with the given driver: "tun" for a
// raw /dev/net/tun handle, "water" for songgao/water.
func Open(driver, name string) (Interface, error) {
	switch driver {
	case "tun", "":
		t, err := OpenTUN(name)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "water":
		w, err := OpenWater(name)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, errors.Errorf("unknown driver %q", driver)
	}
}
