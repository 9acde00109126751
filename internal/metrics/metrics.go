package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DocumentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_created_total",
			Help: "Total estimates and invoices created",
		},
		[]string{"type"},
	)

	DocumentsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_sent_total",
			Help: "Total documents dispatched to customers",
		},
		[]string{"type"},
	)

	EstimatesAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "estimates_accepted_total",
			Help: "Total estimates converted to invoices",
		},
	)

	PaymentsVerified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_verified_total",
			Help: "Online payment verification results",
		},
		[]string{"result"},
	)
)
