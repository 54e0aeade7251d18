package marketplace_api_client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - метрики исходящих запросов к API маркетплейса.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics создает и регистрирует метрики. reg == nil - без регистрации (тесты).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "joytop_admin",
			Name:      "marketplace_api_requests_total",
			Help:      "Number of requests sent to the marketplace API.",
		}, []string{"resource", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "joytop_admin",
			Name:      "marketplace_api_request_duration_seconds",
			Help:      "Latency of requests sent to the marketplace API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "method"}),
	}

	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(resource, method string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	m.requests.WithLabelValues(resource, method, code).Inc()
	m.duration.WithLabelValues(resource, method).Observe(elapsed.Seconds())
}
