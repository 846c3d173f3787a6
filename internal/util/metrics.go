package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ListingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listings_created_total",
		Help: "Total number of listings submitted",
	})

	ListingsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listings_rejected_total",
		Help: "Total number of listing submissions rejected by validation",
	}, []string{"reason"})

	ListingModerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_moderations_total",
		Help: "Total number of listing status changes applied by admins",
	}, []string{"status"})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of order submissions rejected by validation",
	}, []string{"reason"})

	OrderTotalAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_total_amount",
		Help:    "Distribution of order totals",
		Buckets: prometheus.ExponentialBuckets(10, 4, 8),
	})

	AuthVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_verifications_total",
		Help: "Total number of bearer-token verifications",
	}, []string{"result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
