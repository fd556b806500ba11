package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts optimizer requests by handler and outcome.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imageview",
			Name:      "requests_total",
			Help:      "Total number of optimizer requests",
		},
		[]string{"handler", "status"},
	)

	// requestDuration measures request handling duration.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "imageview",
			Name:      "request_duration_seconds",
			Help:      "Duration of optimizer requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"handler"},
	)

	// bytesOut counts transformed bytes served.
	bytesOut = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imageview",
			Name:      "response_bytes_total",
			Help:      "Total bytes of transformed images served",
		},
		[]string{"handler"},
	)
)

// observeRequest records one handled request.
func observeRequest(handler, status string, start time.Time, size int) {
	requestsTotal.WithLabelValues(handler, status).Inc()
	requestDuration.WithLabelValues(handler).Observe(time.Since(start).Seconds())
	if size > 0 {
		bytesOut.WithLabelValues(handler).Add(float64(size))
	}
}
