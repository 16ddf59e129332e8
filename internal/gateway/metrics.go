package gateway

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workdesk",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Records API calls by collection, method and status code (0 = transport failure).",
		}, []string{"collection", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "workdesk",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Records API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection", "method"}),
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

func (m *metrics) observe(collection, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(collection, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(collection, method).Observe(elapsed.Seconds())
}
