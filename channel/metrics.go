package channel

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors updated by MetricsMiddleware.
type Metrics struct {
	Calls    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates call metrics under namespace. The collectors are not
// registered; pass Collectors() to a prometheus.Registerer.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "channel",
				Name:      "calls_total",
				Help:      "Total number of channel calls by channel and outcome.",
			},
			[]string{"channel", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "channel",
				Name:      "call_duration_seconds",
				Help:      "Duration of channel calls.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"channel"},
		),
	}
}

// Collectors returns the collectors to register.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Calls, m.Duration}
}

// MetricsMiddleware records one count and one duration sample per call.
// Go errors from the handler are counted under CodeInternal.
func MetricsMiddleware(m *Metrics) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			name := "unknown"
			if cc, ok := CallContextFrom(ctx); ok {
				name = cc.ChannelName()
			}

			start := time.Now()
			resp, err := next(ctx, payload)
			m.Duration.WithLabelValues(name).Observe(time.Since(start).Seconds())

			outcome := Outcome(ctx)
			if err != nil || outcome == "" {
				outcome = CodeInternal
			}
			m.Calls.WithLabelValues(name, outcome).Inc()
			return resp, err
		}
	}
}
