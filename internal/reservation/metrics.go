package reservation

import "github.com/prometheus/client_golang/prometheus"

// metrics exposes the manager's permit pools and queue depth to an injected
// prometheus.Registerer. A nil Registerer disables metrics entirely,
// matching the teacher's optional-collaborator convention (see
// internal/core/connmgr/module.go's optional:"true" fx tags) rather than
// requiring every caller to wire up Prometheus.
type metrics struct {
	permitsAvailable *prometheus.GaugeVec
	pendingRequests  prometheus.Gauge
	liveCreators     prometheus.Gauge
	shutdownsTotal   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}

	m := &metrics{
		permitsAvailable: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "connreserve",
			Name:      "permits_available",
			Help:      "Permits currently available, by class.",
		}, []string{"class"}),
		pendingRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "connreserve",
			Name:      "pending_requests",
			Help:      "Reservation requests enqueued but not yet serviced.",
		}),
		liveCreators: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "connreserve",
			Name:      "live_channel_creators",
			Help:      "Channel creators issued but not yet shut down.",
		}),
		shutdownsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "connreserve",
			Name:      "shutdowns_total",
			Help:      "Number of times Manager.Shutdown was called.",
		}),
	}

	reg.MustRegister(m.permitsAvailable, m.pendingRequests, m.liveCreators, m.shutdownsTotal)
	return m
}

func (m *metrics) setAvailable(c class, n int64) {
	if m == nil {
		return
	}
	m.permitsAvailable.WithLabelValues(c.String()).Set(float64(n))
}

func (m *metrics) setPending(n int) {
	if m == nil {
		return
	}
	m.pendingRequests.Set(float64(n))
}

func (m *metrics) setLive(n int) {
	if m == nil {
		return
	}
	m.liveCreators.Set(float64(n))
}

func (m *metrics) incShutdowns() {
	if m == nil {
		return
	}
	m.shutdownsTotal.Inc()
}
