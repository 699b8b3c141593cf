package generatepdfs

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "generatepdfs"

// clientMetrics instruments every round trip made by a Client.
type clientMetrics struct {
	requestsTotal   *prometheus.CounterVec
	durationSeconds *prometheus.HistogramVec
	downloadedBytes prometheus.Counter
}

// newClientMetrics builds the collectors and registers them with reg when
// reg is non-nil. Clients sharing a registry share collectors.
func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	m := &clientMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "API requests by operation and HTTP status code.",
			},
			[]string{"operation", "code"},
		),
		durationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "API request latency by operation.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		downloadedBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "downloaded_bytes_total",
				Help:      "PDF bytes downloaded.",
			},
		),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.requestsTotal, err = register(reg, m.requestsTotal); err != nil {
		return nil, err
	}
	if m.durationSeconds, err = register(reg, m.durationSeconds); err != nil {
		return nil, err
	}
	if m.downloadedBytes, err = register(reg, m.downloadedBytes); err != nil {
		return nil, err
	}
	return m, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// observe records a finished round trip. code is 0 when no response arrived.
func (m *clientMetrics) observe(op string, code int, seconds float64) {
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.requestsTotal.WithLabelValues(op, label).Inc()
	m.durationSeconds.WithLabelValues(op).Observe(seconds)
}
