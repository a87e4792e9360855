package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsRequestedTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "stuber", Name: "bookings_requested_total", Help: "Total booking requests"})
	BookingsConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "stuber", Name: "bookings_confirmed_total", Help: "Total bookings confirmed"})
	RidesPostedTotal       = promauto.NewCounter(prometheus.CounterOpts{Namespace: "stuber", Name: "rides_posted_total", Help: "Total ride offers posted"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stuber", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stuber",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
