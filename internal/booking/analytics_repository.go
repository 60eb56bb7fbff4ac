package booking

import (
	"context"

	"github.com/komalrathore0521/BookVenue/internal/availability"
	"github.com/komalrathore0521/BookVenue/internal/db"
)

type StatsByDay struct {
	Bucket            string  `db:"bucket" json:"bucket" example:"2025-07-25"`
	BookingsConfirmed int     `db:"bookings_confirmed" json:"bookingsConfirmed"`
	BookingsCancelled int     `db:"bookings_cancelled" json:"bookingsCancelled"`
	Revenue           float64 `db:"revenue" json:"revenue"`
}

type StatsByVenue struct {
	VenueID           int64   `db:"venue_id" json:"venueId"`
	VenueName         string  `db:"venue_name" json:"venueName"`
	BookingsConfirmed int     `db:"bookings_confirmed" json:"bookingsConfirmed"`
	BookingsCancelled int     `db:"bookings_cancelled" json:"bookingsCancelled"`
	Revenue           float64 `db:"revenue" json:"revenue"`
}

// GetStatsByDay buckets bookings dated within [from, to] by booking date.
// Revenue sums confirmed bookings only.
func (r *PostgresRepository) GetStatsByDay(ctx context.Context, from, to availability.Date) ([]StatsByDay, error) {
	query := `
SELECT
  to_char(booking_date, 'YYYY-MM-DD') AS bucket,
  COUNT(*) FILTER (WHERE status = 'CONFIRMED') AS bookings_confirmed,
  COUNT(*) FILTER (WHERE status = 'CANCELLED') AS bookings_cancelled,
  COALESCE(SUM(total_cost) FILTER (WHERE status = 'CONFIRMED'), 0) AS revenue
FROM bookings
WHERE booking_date BETWEEN $1 AND $2
GROUP BY booking_date
ORDER BY booking_date;
`
	stats := []StatsByDay{}
	if err := db.Conn(ctx, r.db).SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetStatsByVenue lists every venue with at least one booking in [from, to].
func (r *PostgresRepository) GetStatsByVenue(ctx context.Context, from, to availability.Date) ([]StatsByVenue, error) {
	query := `
SELECT
  v.id   AS venue_id,
  v.name AS venue_name,
  COUNT(b.id) FILTER (WHERE b.status = 'CONFIRMED') AS bookings_confirmed,
  COUNT(b.id) FILTER (WHERE b.status = 'CANCELLED') AS bookings_cancelled,
  COALESCE(SUM(b.total_cost) FILTER (WHERE b.status = 'CONFIRMED'), 0) AS revenue
FROM venues v
JOIN bookings b ON b.venue_id = v.id
WHERE b.booking_date BETWEEN $1 AND $2
GROUP BY v.id, v.name
ORDER BY v.id;
`
	stats := []StatsByVenue{}
	if err := db.Conn(ctx, r.db).SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}
