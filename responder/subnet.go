package responder

import (
	"encoding/binary"
	"math"
	"net/netip"

	"github.com/pkg/errors"
	"go4.org/netipx"
)

// Subnet is the pool of addresses this responder answers as.
type Subnet struct {
	prefix netip.Prefix
	rng    netipx.IPRange
}

// NewSubnet masks p to its network address. Only IPv6 prefixes are accepted.
func NewSubnet(p netip.Prefix) (Subnet, error) {
	if !p.IsValid() {
		return Subnet{}, errors.New("invalid prefix")
	}
	if !p.Addr().Is6() || p.Addr().Is4In6() {
		return Subnet{}, errors.Errorf("%s is not an IPv6 prefix", p)
	}

	p = p.Masked()
	return Subnet{prefix: p, rng: netipx.RangeOfPrefix(p)}, nil
}

// ParseSubnet parses a prefix such as "fd00::/64".
func ParseSubnet(s string) (Subnet, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return Subnet{}, errors.WithStack(err)
	}
	return NewSubnet(p)
}

func (s Subnet) Prefix() netip.Prefix {
	return s.prefix
}

func (s Subnet) String() string {
	return s.prefix.String()
}

func (s Subnet) hostBits() int {
	return 128 - s.prefix.Bits()
}

// Size is the number of addresses in the subnet, saturating at MaxUint64.
func (s Subnet) Size() uint64 {
	if s.hostBits() >= 64 {
		return math.MaxUint64
	}
	return 1 << s.hostBits()
}

// Host returns the n-th address of the subnet: the network address with
// its host bits set from n. Host(0) is the network address itself. ok is
// false when n does not fit in the host bits.
func (s Subnet) Host(n int) (addr netip.Addr, ok bool) {
	if !s.prefix.IsValid() || n < 0 {
		return netip.Addr{}, false
	}
	if bits := s.hostBits(); bits < 64 && uint64(n) >= uint64(1)<<bits {
		return netip.Addr{}, false
	}

	// n < 2^63 and the host bits of the base are zero, so setting the
	// low word never carries into the prefix.
	b := s.rng.From().As16()
	lo := binary.BigEndian.Uint64(b[8:])
	binary.BigEndian.PutUint64(b[8:], lo|uint64(n))

	addr = netip.AddrFrom16(b)
	if !s.rng.Contains(addr) {
		panic("responder: enumerated host " + addr.String() + " outside " + s.String())
	}
	return addr, true
}
