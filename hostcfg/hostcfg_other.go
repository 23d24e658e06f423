//go:build !linux

package hostcfg

import (
	"net/netip"
	"runtime"

	"github.com/pkg/errors"
)

type Config struct {
	Interface string
	Network   netip.Prefix
	Gateway   netip.Addr
}

func Apply(cfg Config) error {
	return errors.Errorf("host setup is not supported on %s", runtime.GOOS)
}
