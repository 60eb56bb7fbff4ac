package booking

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/komalrathore0521/BookVenue/internal/availability"
	"github.com/komalrathore0521/BookVenue/internal/db"
)

const bookingColumns = `id, venue_id, user_name, user_email, booking_date, hours_booked, status, total_cost, created_at`

// confirmedUniqueIndex guards at most one CONFIRMED booking per venue and date.
const confirmedUniqueIndex = "bookings_venue_date_confirmed_uq"

var ErrDuplicateConfirmed = errors.New("confirmed booking already exists for venue and date")

type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateBooking inserts b. A concurrent confirmed booking for the same venue
// and date surfaces as ErrDuplicateConfirmed.
func (r *PostgresRepository) CreateBooking(ctx context.Context, b *Booking) (*Booking, error) {
	query := `
		INSERT INTO bookings (venue_id, user_name, user_email, booking_date, hours_booked, status, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bookingColumns

	var created Booking
	err := db.Conn(ctx, r.db).GetContext(ctx, &created, query,
		b.VenueID, b.UserName, b.UserEmail, b.BookingDate, b.HoursBooked, b.Status, b.TotalCost)
	if err != nil {
		if db.IsUniqueViolation(err, confirmedUniqueIndex) {
			return nil, ErrDuplicateConfirmed
		}
		return nil, err
	}

	return &created, nil
}

func (r *PostgresRepository) GetBookingByID(ctx context.Context, id int64) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	if err := db.Conn(ctx, r.db).GetContext(ctx, &b, query, id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresRepository) ListBookings(ctx context.Context) ([]Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY id ASC`
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListRecentBookings(ctx context.Context, limit int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

func (r *PostgresRepository) ListByVenue(ctx context.Context, venueID int64) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE venue_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, venueID)
}

func (r *PostgresRepository) ListByEmail(ctx context.Context, email string) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_email = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, email)
}

// ListByDateRange returns bookings dated within [from, to].
func (r *PostgresRepository) ListByDateRange(ctx context.Context, from, to availability.Date) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE booking_date BETWEEN $1 AND $2
		ORDER BY booking_date ASC, id ASC
	`
	return r.list(ctx, query, from, to)
}

func (r *PostgresRepository) HasConfirmedBooking(ctx context.Context, venueID int64, date availability.Date) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE venue_id = $1 AND booking_date = $2 AND status = 'CONFIRMED'
		)
	`
	return db.Exists(ctx, db.Conn(ctx, r.db), query, venueID, date)
}

// UpdateBooking returns sql.ErrNoRows when the booking does not exist.
func (r *PostgresRepository) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*Booking, error) {
	query := `
		UPDATE bookings
		SET user_name = $1, user_email = $2, booking_date = $3, hours_booked = $4
		WHERE id = $5
		RETURNING ` + bookingColumns

	var b Booking
	err := db.Conn(ctx, r.db).GetContext(ctx, &b, query, req.UserName, req.UserEmail, *req.BookingDate, req.HoursBooked, id)
	if err != nil {
		if db.IsUniqueViolation(err, confirmedUniqueIndex) {
			return nil, ErrDuplicateConfirmed
		}
		return nil, err
	}
	return &b, nil
}

// DeleteBooking reports whether a row was removed.
func (r *PostgresRepository) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	result, err := db.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PostgresRepository) CountBookings(ctx context.Context) (int, error) {
	var count int
	err := db.Conn(ctx, r.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings`)
	return count, err
}

func (r *PostgresRepository) CountConfirmed(ctx context.Context) (int, error) {
	var count int
	err := db.Conn(ctx, r.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE status = 'CONFIRMED'`)
	return count, err
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]Booking, error) {
	bookings := []Booking{}
	if err := db.Conn(ctx, r.db).SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}
