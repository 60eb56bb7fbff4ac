package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookvenue_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookvenue_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookvenue_booking_attempts_total",
			Help: "Booking creation attempts by outcome",
		},
		[]string{"outcome"},
	)

	BookingRevenueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookvenue_booking_revenue_total",
			Help: "Sum of total cost over confirmed bookings",
		},
	)

	BookingDeletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookvenue_booking_deletions_total",
			Help: "Total number of booking deletions",
		},
	)

	VenuesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookvenue_venues_created_total",
			Help: "Total number of venues created",
		},
		[]string{"source"},
	)

	VenueDeactivationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookvenue_venue_deactivations_total",
			Help: "Total number of venue soft deletes",
		},
	)

	AvailabilityChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookvenue_availability_changes_total",
			Help: "Dates blocked or unblocked through availability updates",
		},
		[]string{"action"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookvenue_emails_sent_total",
			Help: "Total number of emails processed",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookvenue_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookvenue_events_published_total",
			Help: "Domain events published by broker and status",
		},
		[]string{"broker", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingAttempt(outcome string) {
	BookingAttemptsTotal.WithLabelValues(outcome).Inc()
}

func RecordBookingConfirmed(totalCost float64) {
	BookingAttemptsTotal.WithLabelValues("confirmed").Inc()
	BookingRevenueTotal.Add(totalCost)
}

func RecordBookingDeletion() {
	BookingDeletionsTotal.Inc()
}

func RecordVenueCreated(source string) {
	VenuesCreatedTotal.WithLabelValues(source).Inc()
}

func RecordVenueDeactivation() {
	VenueDeactivationsTotal.Inc()
}

func RecordAvailabilityChange(blocked, unblocked int) {
	AvailabilityChangesTotal.WithLabelValues("block").Add(float64(blocked))
	AvailabilityChangesTotal.WithLabelValues("unblock").Add(float64(unblocked))
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordEvent(broker, status string) {
	EventsPublishedTotal.WithLabelValues(broker, status).Inc()
}
