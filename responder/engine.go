// Package responder answers IPv6 probes arriving on a TUN device with ICMPv6
// Time Exceeded messages sent from an address of a configured subnet. The
// inbound hop limit picks which address of the subnet answers.
package responder

import (
	"net/netip"

	"go.uber.org/zap"
)

// DropReason says why a frame got no reply.
type DropReason string

const (
	DropNone          DropReason = ""
	DropShortFrame    DropReason = "short_frame"
	DropNotIPv6       DropReason = "not_ipv6"
	DropOutsideSubnet DropReason = "outside_subnet"
	DropTooLarge      DropReason = "too_large"
	DropNotAdmitted   DropReason = "not_admitted"
)

// maxEcho keeps the reply payload length inside the 16 bit header field;
// anything bigger would need a jumbogram.
const maxEcho = 0xffff - icmpFixedLen

// request is what the checks learn about a frame as they go.
type request struct {
	frame  Frame
	target netip.Addr
}

type check func(e *Engine, r *request) DropReason

// checks run in order; the first non-empty reason wins.
var checks = []check{
	checkLength,
	checkVersion,
	checkTarget,
	checkSize,
	checkAdmission,
}

func checkLength(_ *Engine, r *request) DropReason {
	if len(r.frame) < MinFrameLen {
		return DropShortFrame
	}
	return DropNone
}

func checkVersion(_ *Engine, r *request) DropReason {
	if r.frame.Packet().Version() != 6 {
		return DropNotIPv6
	}
	return DropNone
}

// checkTarget treats the hop limit as an index into the subnet. That index
// picks the address the reply comes from.
func checkTarget(e *Engine, r *request) DropReason {
	target, ok := e.subnet.Host(int(r.frame.Packet().HopLimit()))
	if !ok {
		return DropOutsideSubnet
	}
	r.target = target
	return DropNone
}

func checkSize(_ *Engine, r *request) DropReason {
	if len(r.frame.Packet()) > maxEcho {
		return DropTooLarge
	}
	return DropNone
}

func checkAdmission(e *Engine, r *request) DropReason {
	if e.gate != nil && !e.gate.Admit(r.frame.Packet().Destination()) {
		return DropNotAdmitted
	}
	return DropNone
}

// Engine turns inbound frames into Time Exceeded replies.
type Engine struct {
	subnet  Subnet
	gate    Gate
	logger  *zap.SugaredLogger
	metrics *Metrics
}

type Option func(*Engine)

// WithGate only answers packets the gate admits.
func WithGate(g Gate) Option {
	return func(e *Engine) { e.gate = g }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func NewEngine(subnet Subnet, opts ...Option) *Engine {
	e := &Engine{subnet: subnet, logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs every check against frame and, if all pass, builds the
// reply. reason is DropNone exactly when reply is non-nil.
func (e *Engine) Evaluate(frame []byte) (reply []byte, reason DropReason) {
	r := &request{frame: frame}
	for _, c := range checks {
		if reason = c(e, r); reason != DropNone {
			return nil, reason
		}
	}

	p := r.frame.Packet()
	reply, err := newReply(r.frame.Prefix()).
		From(r.target).
		To(p.Source()).
		Echo(p).
		Build()
	if err != nil {
		// only reachable through a serialization bug
		panic(err)
	}
	return reply, DropNone
}

// Handle returns the reply for frame, or false if it should be ignored.
// Bad input never surfaces as an error.
func (e *Engine) Handle(frame []byte) ([]byte, bool) {
	reply, reason := e.Evaluate(frame)
	e.metrics.observe(reason)

	if reason != DropNone {
		e.logger.Debugw("dropped frame", "reason", reason, "len", len(frame))
		return nil, false
	}

	p := Frame(frame).Packet()
	e.logger.Debugw("replying",
		"src", p.Source().String(),
		"dst", p.Destination().String(),
		"hopLimit", p.HopLimit(),
		"target", Frame(reply).Packet().Source().String(),
		"len", len(reply),
	)
	return reply, true
}
