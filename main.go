package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aidansteele/ipv6-ghost-hops/frameio"
	"github.com/aidansteele/ipv6-ghost-hops/hostcfg"
	"github.com/aidansteele/ipv6-ghost-hops/responder"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// gatewayIndex is the host of the subnet that the kernel side of the
// interface gets. Probes with this hop limit are still answered by us.
const gatewayIndex = 1

func main() {
	var iface, network, driver, secret, pcapPath, metricsAddr string
	var debug, skipSetup bool
	pflag.StringVarP(&iface, "interface", "i", "", "name of the tunnel to bring up")
	pflag.StringVarP(&network, "network", "n", "", "IPv6 network to answer for, e.g. fd00::/64")
	pflag.StringVar(&driver, "driver", "tun", "tun device driver: tun or water")
	pflag.BoolVar(&skipSetup, "skip-setup", false, "don't configure links, addresses, routes or forwarding")
	pflag.StringVar(&secret, "secret", "", "only answer probes carrying this totp secret's current code")
	pflag.StringVar(&pcapPath, "pcap", "", "write received and sent packets to this pcap file")
	pflag.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	pflag.BoolVar(&debug, "debug", false, "verbose debug logging")
	pflag.Parse()

	if iface == "" || network == "" {
		fmt.Fprintln(os.Stderr, "--interface and --network are mandatory")
		pflag.Usage()
		os.Exit(1)
	}

	subnet, err := responder.ParseSubnet(network)
	if err != nil {
		fmt.Fprintf(os.Stderr, "--network: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(debug)
	defer logger.Sync()

	opts := []responder.Option{responder.WithLogger(logger)}

	if secret != "" {
		gate, err := responder.NewTOTPGate(secret)
		if err != nil {
			fmt.Fprintln(os.Stderr, "--secret must be a base32 totp secret, see ./generate")
			os.Exit(1)
		}
		opts = append(opts, responder.WithGate(gate))

		if debug {
			go printCodes(context.Background(), logger, gate, subnet)
		}
	}

	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, responder.WithMetrics(responder.NewMetrics(reg)))
		go serveMetrics(logger, metricsAddr, reg)
	}

	dev, err := frameio.Open(driver, iface)
	if err != nil {
		fatal(err)
	}
	defer dev.Close()
	logger.Infow("brought up tun interface", "name", dev.Name(), "driver", driver)

	if !skipSetup {
		gateway, ok := subnet.Host(gatewayIndex)
		if !ok {
			fatal(errors.Errorf("%s has no room for a gateway address", subnet))
		}

		err = hostcfg.Apply(hostcfg.Config{
			Interface: dev.Name(),
			Network:   subnet.Prefix(),
			Gateway:   gateway,
		})
		if err != nil {
			fatal(err)
		}
		logger.Infow("kernel configuration ok", "gateway", gateway.String(), "network", subnet.String())
	}

	var frames responder.FrameIO = dev
	if pcapPath != "" {
		f, err := os.Create(pcapPath)
		if err != nil {
			fatal(err)
		}
		defer f.Close()

		rec, err := frameio.NewRecorder(dev, f)
		if err != nil {
			fatal(err)
		}
		frames = rec
	}

	logger.Infow("answering probes", "network", subnet.String(), "hosts", subnet.Size())
	fatal(responder.Serve(frames, responder.NewEngine(subnet, opts...)))
}

func newLogger(debug bool) *zap.SugaredLogger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	return zap.Must(zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderCfg,
	}.Build()).Sugar()
}

func fatal(err error) {
	fmt.Printf("%+v\n", err)
	panic(err)
}

func serveMetrics(logger *zap.SugaredLogger, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Errorw("metrics server stopped", "addr", addr, "error", err)
	}
}

// printCodes logs the code a probe must carry each time it rotates, along
// with an address in the subnet that carries it.
func printCodes(ctx context.Context, logger *zap.SugaredLogger, gate *responder.TOTPGate, subnet responder.Subnet) {
	now := time.Now()
	period := 30 * time.Second
	t := now.Truncate(period)

	tick := time.NewTicker(t.Add(period).Sub(now))
	first := true

	expect := func() {
		code, err := gate.Code()
		if err != nil {
			logger.Errorw("generating code", "error", err)
			return
		}
		addr, _ := responder.AddrForCode(subnet.Prefix().Addr(), code)
		logger.Debugw("now expecting", "code", code, "addr", addr.String())
	}
	expect()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if first {
				tick.Reset(period)
				first = false
			}
			expect()
		}
	}
}
