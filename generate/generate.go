package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/spf13/pflag"
)

func main() {
	var account, qrPath string
	pflag.StringVar(&account, "account", "traceroute", "account name shown in the authenticator app")
	pflag.StringVar(&qrPath, "qr", "qr.png", "where to write the QR code, empty to skip")
	pflag.Parse()

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "ipv6-ghost-hops",
		AccountName: account,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		fmt.Printf("%+v\n", errors.WithStack(err))
		panic(err)
	}

	if qrPath != "" {
		if err := writeQR(key, qrPath); err != nil {
			fmt.Printf("%+v\n", err)
			panic(err)
		}
		fmt.Printf("Wrote QR code to %s\n", qrPath)
	}

	fmt.Printf("Secret (for ipv6-ghost-hops --secret ... usage) is %s\n", key.Secret())
	fmt.Println("Probe an address whose last three 16-bit groups end in the code's digit pairs, e.g. code 123456 -> <prefix>::12:34:56")
}

func writeQR(key *otp.Key, path string) error {
	img, err := key.Image(200, 200)
	if err != nil {
		return errors.WithStack(err)
	}

	buf := bytes.Buffer{}
	if err := png.Encode(&buf, img); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(os.WriteFile(path, buf.Bytes(), 0644))
}
