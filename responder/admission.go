package responder

import (
	"fmt"
	"net/netip"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Gate decides whether a packet addressed to dst deserves a reply.
type Gate interface {
	Admit(dst netip.Addr) bool
}

// TOTPGate admits packets whose destination address carries the current
// TOTP code in bytes 11, 13 and 15, each byte read as two hex digits, so
// code 123456 is reached at fd00::12:34:56.
type TOTPGate struct {
	secret string
	now    func() time.Time
}

var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// NewTOTPGate fails if secret is not a usable base32 TOTP secret.
func NewTOTPGate(secret string) (*TOTPGate, error) {
	if secret == "" {
		return nil, errors.New("empty totp secret")
	}
	if _, err := totp.GenerateCodeCustom(secret, time.Now(), totpOpts); err != nil {
		return nil, errors.Wrap(err, "totp secret")
	}
	return &TOTPGate{secret: secret, now: time.Now}, nil
}

// CodeFromAddr extracts the code a client embedded in dst.
func CodeFromAddr(dst netip.Addr) string {
	b := dst.As16()
	return fmt.Sprintf("%02x%02x%02x", b[11], b[13], b[15])
}

// AddrForCode is the inverse of CodeFromAddr: base with the code written
// into bytes 11, 13 and 15.
func AddrForCode(base netip.Addr, code string) (netip.Addr, error) {
	if len(code) != 6 {
		return netip.Addr{}, errors.Errorf("code %q is not 6 digits", code)
	}

	b := base.As16()
	for i, idx := range []int{11, 13, 15} {
		v, err := strconv.ParseUint(code[2*i:2*i+2], 16, 8)
		if err != nil {
			return netip.Addr{}, errors.Wrapf(err, "code %q", code)
		}
		b[idx] = byte(v)
	}
	return netip.AddrFrom16(b), nil
}

// Code is the code a client must embed right now.
func (g *TOTPGate) Code() (string, error) {
	code, err := totp.GenerateCodeCustom(g.secret, g.now().UTC(), totpOpts)
	return code, errors.WithStack(err)
}

func (g *TOTPGate) Admit(dst netip.Addr) bool {
	ok, err := totp.ValidateCustom(CodeFromAddr(dst), g.secret, g.now().UTC(), totpOpts)
	return err == nil && ok
}
