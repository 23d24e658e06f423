//go:build linux

// Package hostcfg does the one-off kernel setup that routes a subnet to the
// responder's interface.
package hostcfg

import (
	"net"
	"net/netip"
	"os"

	"github.com/pkg/errors"
	"github.com/tailscale/netlink"
	"golang.org/x/sys/unix"
)

const forwardingPath = "/proc/sys/net/ipv6/conf/all/forwarding"

// Config describes what to set up.
type Config struct {
	// Interface is the name of an existing TUN interface.
	Interface string
	// Network is routed to Interface.
	Network netip.Prefix
	// Gateway is assigned to Interface as a /128.
	Gateway netip.Addr
}

// Apply brings the link up, adds the gateway address, routes the network
// via the link and turns on IPv6 forwarding. It is safe to run again on an
// interface that is already configured.
func Apply(cfg Config) error {
	link, err := netlink.LinkByName(cfg.Interface)
	if err != nil {
		return errors.Wrapf(err, "looking up %s", cfg.Interface)
	}

	if err := netlink.LinkSetUp(link); err != nil {
		return errors.Wrapf(err, "bringing %s up", cfg.Interface)
	}

	addr := &netlink.Addr{IPNet: ipNet(netip.PrefixFrom(cfg.Gateway, 128))}
	if err := netlink.AddrAdd(link, addr); err != nil && !errors.Is(err, unix.EEXIST) {
		return errors.Wrapf(err, "adding %s to %s", cfg.Gateway, cfg.Interface)
	}

	route := &netlink.Route{
		LinkIndex: link.Attrs().Index,
		Dst:       ipNet(cfg.Network.Masked()),
	}
	if err := netlink.RouteReplace(route); err != nil {
		return errors.Wrapf(err, "routing %s via %s", cfg.Network, cfg.Interface)
	}

	if err := os.WriteFile(forwardingPath, []byte("1\n"), 0644); err != nil {
		return errors.Wrap(err, "enabling ipv6 forwarding")
	}
	return nil
}

func ipNet(p netip.Prefix) *net.IPNet {
	return &net.IPNet{
		IP:   p.Addr().AsSlice(),
		Mask: net.CIDRMask(p.Bits(), p.Addr().BitLen()),
	}
}
