package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Direction labels for codec metrics.
const (
	DirectionDecode = "decode"
	DirectionEncode = "encode"
)

var (
	registerOnce sync.Once

	codecMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genlstats",
			Subsystem: "codec",
			Name:      "messages_total",
			Help:      "Generic netlink payloads handled by the codec.",
		},
		[]string{"family", "direction", "result"},
	)
	codecAttributes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genlstats",
			Subsystem: "codec",
			Name:      "attributes_total",
			Help:      "Decoded attributes by kind.",
		},
		[]string{"family", "kind"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genlstats",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "genlstats",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(codecMessages, codecAttributes, httpRequests, httpDuration)
	})
}

// RecordCodec counts one payload through the codec.
func RecordCodec(family, direction string, err error) {
	RegisterMetrics()
	result := "ok"
	if err != nil {
		result = "error"
	}
	codecMessages.WithLabelValues(family, direction, result).Inc()
}

// RecordAttribute counts one decoded attribute.
func RecordAttribute(family, kind string) {
	RegisterMetrics()
	codecAttributes.WithLabelValues(family, kind).Inc()
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}
