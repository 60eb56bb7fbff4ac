package booking

import (
	"context"

	"github.com/komalrathore0521/BookVenue/internal/availability"
)

type Repository interface {
	CreateBooking(ctx context.Context, b *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id int64) (*Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	ListRecentBookings(ctx context.Context, limit int) ([]Booking, error)
	ListByVenue(ctx context.Context, venueID int64) ([]Booking, error)
	ListByEmail(ctx context.Context, email string) ([]Booking, error)
	ListByDateRange(ctx context.Context, from, to availability.Date) ([]Booking, error)
	HasConfirmedBooking(ctx context.Context, venueID int64, date availability.Date) (bool, error)
	UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*Booking, error)
	DeleteBooking(ctx context.Context, id int64) (bool, error)
	CountBookings(ctx context.Context) (int, error)
	CountConfirmed(ctx context.Context) (int, error)
	GetStatsByDay(ctx context.Context, from, to availability.Date) ([]StatsByDay, error)
	GetStatsByVenue(ctx context.Context, from, to availability.Date) ([]StatsByVenue, error)
}

var _ Repository = (*PostgresRepository)(nil)
