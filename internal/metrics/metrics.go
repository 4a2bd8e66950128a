// Package metrics provides Prometheus metrics for gateway traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filedash_gateway_requests_total",
			Help: "Total number of gateway requests",
		},
		[]string{"op", "outcome"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filedash_gateway_request_duration_seconds",
			Help:    "Gateway request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	gatewayRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filedash_gateway_requests_in_flight",
			Help: "Number of gateway requests currently in flight",
		},
	)

	transferBytesDownloaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filedash_transfer_bytes_downloaded_total",
			Help: "Total bytes downloaded through the gateway",
		},
	)

	transferBytesUploaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filedash_transfer_bytes_uploaded_total",
			Help: "Total bytes uploaded through the gateway",
		},
	)

	staleResponsesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filedash_stale_responses_dropped_total",
			Help: "Content loads discarded because the location changed before they resolved",
		},
	)
)

// ObserveRequest records one completed gateway request. Outcome is the
// HTTP status code, or "network_error" when the request never completed.
func ObserveRequest(op string, status int, err error, elapsed time.Duration) {
	outcome := strconv.Itoa(status)
	if err != nil && status == 0 {
		outcome = "network_error"
	}
	gatewayRequestsTotal.WithLabelValues(op, outcome).Inc()
	gatewayRequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// RequestStarted marks a gateway request as in flight and returns a
// func that marks it finished.
func RequestStarted() func() {
	gatewayRequestsInFlight.Inc()
	return gatewayRequestsInFlight.Dec
}

// AddBytesDownloaded records downloaded payload bytes.
func AddBytesDownloaded(n int64) {
	if n > 0 {
		transferBytesDownloaded.Add(float64(n))
	}
}

// AddBytesUploaded records uploaded payload bytes.
func AddBytesUploaded(n int64) {
	if n > 0 {
		transferBytesUploaded.Add(float64(n))
	}
}

// StaleResponseDropped records one suppressed stale content load.
func StaleResponseDropped() {
	staleResponsesDropped.Inc()
}
