package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StripeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paygate_stripe_requests_total",
		Help: "Total Stripe API calls issued by the gateway",
	}, []string{"operation", "outcome"})

	StripeRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "paygate_stripe_request_latency_seconds",
		Help:    "Latency of Stripe API calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	PayoutsCircuitOpen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paygate_payouts_circuit_open_total",
		Help: "Requests rejected because the payouts API circuit breaker was open",
	})
)

// ObserveRequest records one gateway round trip. Call with the operation name
// and start time once the remote call has returned.
func ObserveRequest(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StripeRequestsTotal.WithLabelValues(operation, outcome).Inc()
	StripeRequestLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
