//go:build !linux

package frameio

import (
	"io"
	"runtime"

	"github.com/pkg/errors"
)

type Interface interface {
	Device
	io.Closer
	Name() string
}

func Open(driver, name string) (Interface, error) {
	return nil, errors.Errorf("TUN devices are not supported on %s", runtime.GOOS)
}
