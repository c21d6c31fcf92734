package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barber_connect",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "barber_connect",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barber_connect",
			Name:      "appointment_transitions_total",
			Help:      "Appointment status transitions by outcome.",
		},
		[]string{"to", "result"},
	)

	registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barber_connect",
			Name:      "registrations_total",
			Help:      "Successful registrations by role.",
		},
		[]string{"role"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, transitions, registrations)
	})
}

// ObserveHTTP records one finished request. route is the matched pattern,
// not the raw path.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Transition results.
const (
	ResultApplied  = "applied"
	ResultConflict = "conflict"
)

func IncTransition(to, result string) {
	transitions.WithLabelValues(to, result).Inc()
}

func IncRegistration(role string) {
	registrations.WithLabelValues(role).Inc()
}
