package responder

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what the engine does with each frame. A nil *Metrics is
// valid and counts nothing.
type Metrics struct {
	received prometheus.Counter
	replied  prometheus.Counter
	dropped  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ghosthops",
			Name:      "frames_received_total",
			Help:      "Frames read from the interface.",
		}),
		replied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ghosthops",
			Name:      "replies_sent_total",
			Help:      "Time Exceeded replies built.",
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ghosthops",
			Name:      "frames_dropped_total",
			Help:      "Frames dropped without a reply, by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.received, m.replied, m.dropped)
	return m
}

func (m *Metrics) observe(reason DropReason) {
	if m == nil {
		return
	}
	m.received.Inc()
	if reason == DropNone {
		m.replied.Inc()
		return
	}
	m.dropped.WithLabelValues(string(reason)).Inc()
}
