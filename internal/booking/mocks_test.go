package booking

import (
	"context"
	"time"

	"github.com/komalrathore0521/BookVenue/internal/availability"
	"github.com/komalrathore0521/BookVenue/internal/venue"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct{ mock.Mock }
type MockVenueRepo struct{ mock.Mock }
type MockNotifier struct{ mock.Mock }
type MockPublisher struct{ mock.Mock }
type MockService struct{ mock.Mock }

func (m *MockBookingRepo) CreateBooking(ctx context.Context, b *Booking) (*Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) GetBookingByID(ctx context.Context, id int64) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) ListBookings(ctx context.Context) ([]Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepo) ListRecentBookings(ctx context.Context, limit int) ([]Booking, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepo) ListByVenue(ctx context.Context, venueID int64) ([]Booking, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepo) ListByEmail(ctx context.Context, email string) ([]Booking, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepo) ListByDateRange(ctx context.Context, from, to availability.Date) ([]Booking, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepo) HasConfirmedBooking(ctx context.Context, venueID int64, date availability.Date) (bool, error) {
	args := m.Called(ctx, venueID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*Booking, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) CountBookings(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) CountConfirmed(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) GetStatsByDay(ctx context.Context, from, to availability.Date) ([]StatsByDay, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StatsByDay), args.Error(1)
}

func (m *MockBookingRepo) GetStatsByVenue(ctx context.Context, from, to availability.Date) ([]StatsByVenue, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StatsByVenue), args.Error(1)
}

func (m *MockVenueRepo) CreateVenue(ctx context.Context, v *venue.Venue) (*venue.Venue, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) GetVenueByID(ctx context.Context, id int64) (*venue.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) GetVenueByIDForUpdate(ctx context.Context, id int64) (*venue.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) FindByNameIgnoreCase(ctx context.Context, name string) (*venue.Venue, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) ListActiveVenues(ctx context.Context) ([]venue.Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) ListActiveByLocation(ctx context.Context, location string) ([]venue.Venue, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) ListActiveByCapacityRange(ctx context.Context, min, max int) ([]venue.Venue, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) ListActiveByPriceRange(ctx context.Context, min, max float64) ([]venue.Venue, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) ListByCreator(ctx context.Context, createdBy string) ([]venue.Venue, error) {
	args := m.Called(ctx, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) ListVenuesByIDs(ctx context.Context, ids []int64) (map[int64]*venue.Venue, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) UpdateVenue(ctx context.Context, id int64, req venue.UpdateVenueRequest) (*venue.Venue, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) Deactivate(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockVenueRepo) ReplaceUnavailableDates(ctx context.Context, venueID int64, dates availability.DateSet) error {
	return m.Called(ctx, venueID, dates).Error(0)
}

func (m *MockVenueRepo) AddUnavailableDate(ctx context.Context, venueID int64, d availability.Date) error {
	return m.Called(ctx, venueID, d).Error(0)
}

func (m *MockVenueRepo) CountVenues(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockVenueRepo) CountActiveVenues(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockNotifier) SendBookingConfirmation(ctx context.Context, to, name, venueName, details string, date time.Time) error {
	return m.Called(ctx, to, name, venueName, details, date).Error(0)
}

func (m *MockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	return m.Called(ctx, key, v).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

func (m *MockService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockService) GetAllBookings(ctx context.Context) ([]Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockService) GetRecentBookings(ctx context.Context) ([]Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockService) GetBookingByID(ctx context.Context, id int64) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockService) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*Booking, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockService) DeleteBooking(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) ListBookings(ctx context.Context, filter ListFilter) ([]Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockService) GetBookingsByVenue(ctx context.Context, venueID int64) ([]Booking, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockService) GetBookingsByEmail(ctx context.Context, email string) ([]Booking, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockService) GetBookingsByDateRange(ctx context.Context, from, to availability.Date) ([]Booking, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockService) CountBookings(ctx context.Context) (*CountResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CountResponse), args.Error(1)
}

func (m *MockService) GetStats(ctx context.Context, filter StatsFilter) (*StatsResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StatsResponse), args.Error(1)
}

// fakeTx runs fn directly and records whether it failed.
type fakeTx struct {
	calls      int
	rolledBack bool
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	err := fn(ctx)
	f.rolledBack = err != nil
	return err
}
