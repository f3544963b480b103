package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "timebook",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	bookingsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "timebook",
			Name:      "bookings_saved_total",
			Help:      "Booking XML documents written to the output directory.",
		},
	)

	forwardFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "timebook",
			Name:      "forward_failures_total",
			Help:      "Best-effort forwards that failed and were dropped.",
		},
		[]string{"task_type"},
	)

	forwardDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "timebook",
			Name:      "forward_dropped_total",
			Help:      "Forward tasks dropped before dispatch due to a full queue.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsSaved, forwardFailures, forwardDropped)
	})
}

// IncHTTP increments the request counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// IncBookingSaved counts one stored booking document.
func IncBookingSaved() {
	bookingsSaved.Inc()
}

// IncForwardFailure counts one dropped forward by task type.
func IncForwardFailure(taskType string) {
	forwardFailures.WithLabelValues(taskType).Inc()
}

// IncForwardDropped counts a task dropped because the queue was full.
func IncForwardDropped() {
	forwardDropped.Inc()
}
