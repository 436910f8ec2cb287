package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barbershop",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barbershop",
			Name:      "reservations_created_total",
			Help:      "Successfully created reservations.",
		},
	)

	bookingRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barbershop",
			Name:      "booking_rejections_total",
			Help:      "Booking attempts rejected by business rules.",
		},
		[]string{"reason"},
	)

	webhookDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barbershop",
			Name:      "webhook_deliveries_total",
			Help:      "Outbound booking notifications by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers the collectors. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			reservationsCreated,
			bookingRejections,
			webhookDeliveries,
		)
	})
}

func IncHTTP(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}

func IncReservationCreated() {
	reservationsCreated.Inc()
}

func IncBookingRejection(reason string) {
	bookingRejections.WithLabelValues(reason).Inc()
}

func IncWebhookDelivery(outcome string) {
	webhookDeliveries.WithLabelValues(outcome).Inc()
}
