// Package metrics holds the Prometheus collectors of the POS server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bucketpos"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	rpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total number of RPCs handled.",
		},
		[]string{"procedure", "code"},
	)

	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of RPCs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"procedure"},
	)

	checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "checkouts_total",
			Help:      "Buckets settled, by payment method.",
		},
		[]string{"method"},
	)

	checkoutCents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "checkout_cents_total",
			Help:      "Sum of settled bucket totals in cents.",
		},
	)

	checkIns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "members",
			Name:      "checkins_total",
			Help:      "Member check-ins recorded.",
		},
	)

	checkInReversals = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "members",
			Name:      "checkin_reversals_total",
			Help:      "Check-ins deleted again.",
		},
	)
)

func init() {
	Registry.MustRegister(
		rpcRequests,
		rpcDuration,
		checkouts,
		checkoutCents,
		checkIns,
		checkInReversals,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveRPC records one finished RPC.
func ObserveRPC(procedure, code string, seconds float64) {
	rpcRequests.WithLabelValues(procedure, code).Inc()
	rpcDuration.WithLabelValues(procedure).Observe(seconds)
}

// RecordCheckout records a settled bucket.
func RecordCheckout(method string, totalCents int64) {
	checkouts.WithLabelValues(method).Inc()
	checkoutCents.Add(float64(totalCents))
}

func RecordCheckIn() {
	checkIns.Inc()
}

func RecordCheckInReversal() {
	checkInReversals.Inc()
}
