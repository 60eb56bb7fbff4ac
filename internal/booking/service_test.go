package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/komalrathore0521/BookVenue/internal/availability"
	"github.com/komalrathore0521/BookVenue/internal/events"
	"github.com/komalrathore0521/BookVenue/internal/venue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var bookingDate = availability.NewDate(2025, 7, 25)

type fixture struct {
	repo      *MockBookingRepo
	venues    *MockVenueRepo
	notifier  *MockNotifier
	publisher *MockPublisher
	tx        *fakeTx
	svc       Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:      new(MockBookingRepo),
		venues:    new(MockVenueRepo),
		notifier:  new(MockNotifier),
		publisher: new(MockPublisher),
		tx:        &fakeTx{},
	}
	f.svc = NewService(f.repo, f.venues, f.tx, f.notifier, f.publisher)
	return f
}

func createRequest(venueID int64, hours int) CreateBookingRequest {
	d := bookingDate
	return CreateBookingRequest{
		VenueID:     venueID,
		UserName:    "Asha",
		UserEmail:   "asha@example.com",
		BookingDate: &d,
		HoursBooked: hours,
	}
}

func activeVenue(id int64, price float64, blocked ...availability.Date) *venue.Venue {
	return &venue.Venue{
		ID:               id,
		Name:             "Green Garden Venue",
		PricePerHour:     price,
		IsActive:         true,
		UnavailableDates: availability.NewDateSet(blocked...),
	}
}

func TestCalculateCost(t *testing.T) {
	assert.Equal(t, 9000.0, CalculateCost(3000, 3))
	assert.Equal(t, 2500.0, CalculateCost(2500, 1))
	assert.Equal(t, 0.0, CalculateCost(3000, 0))
}

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := activeVenue(1, 3000)

	f.venues.On("GetVenueByIDForUpdate", ctx, int64(1)).Return(v, nil)
	f.repo.On("HasConfirmedBooking", ctx, int64(1), bookingDate).Return(false, nil)
	f.repo.On("CreateBooking", ctx, mock.MatchedBy(func(b *Booking) bool {
		return b.TotalCost == 9000 && b.Status == StatusConfirmed && b.VenueID == 1 && b.BookingDate == bookingDate
	})).Return(&Booking{ID: 10, VenueID: 1, UserName: "Asha", UserEmail: "asha@example.com", BookingDate: bookingDate, HoursBooked: 3, Status: StatusConfirmed, TotalCost: 9000}, nil)
	f.venues.On("AddUnavailableDate", ctx, int64(1), bookingDate).Return(nil)
	f.notifier.On("SendBookingConfirmation", ctx, "asha@example.com", "Asha", "Green Garden Venue", mock.Anything, bookingDate.Time()).Return(nil)
	f.publisher.On("PublishJSON", ctx, "1", mock.MatchedBy(func(ev events.BookingConfirmed) bool {
		return ev.Type == events.TypeBookingConfirmed && ev.BookingID == 10 && ev.BookingDate == "2025-07-25" && ev.TotalCost == 9000
	})).Return(nil)

	b, err := f.svc.CreateBooking(ctx, createRequest(1, 3))
	require.NoError(t, err)

	assert.Equal(t, 9000.0, b.TotalCost)
	assert.Equal(t, StatusConfirmed, b.Status)
	require.NotNil(t, b.Venue)
	assert.True(t, b.Venue.UnavailableDates.Contains(bookingDate))
	assert.False(t, b.Venue.IsAvailableOn(bookingDate))
	assert.Equal(t, 1, f.tx.calls)
	assert.False(t, f.tx.rolledBack)

	f.repo.AssertExpectations(t)
	f.venues.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestCreateBooking_VenueNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.venues.On("GetVenueByIDForUpdate", ctx, int64(42)).Return(nil, sql.ErrNoRows)

	_, err := f.svc.CreateBooking(ctx, createRequest(42, 2))
	assert.ErrorIs(t, err, ErrVenueNotFound)
	assert.True(t, f.tx.rolledBack)
	f.repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_BlockedDate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.venues.On("GetVenueByIDForUpdate", ctx, int64(1)).Return(activeVenue(1, 3000, bookingDate), nil)

	_, err := f.svc.CreateBooking(ctx, createRequest(1, 2))
	assert.ErrorIs(t, err, ErrVenueUnavailable)
	assert.True(t, f.tx.rolledBack)
	f.repo.AssertNotCalled(t, "HasConfirmedBooking", mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	f.venues.AssertNotCalled(t, "AddUnavailableDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_InactiveVenue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	v := activeVenue(1, 3000)
	v.IsActive = false
	f.venues.On("GetVenueByIDForUpdate", ctx, int64(1)).Return(v, nil)

	_, err := f.svc.CreateBooking(ctx, createRequest(1, 2))
	assert.ErrorIs(t, err, ErrVenueUnavailable)
	f.repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBooking_DateAlreadyBooked(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.venues.On("GetVenueByIDForUpdate", ctx, int64(1)).Return(activeVenue(1, 3000), nil)
	f.repo.On("HasConfirmedBooking", ctx, int64(1), bookingDate).Return(true, nil)

	_, err := f.svc.CreateBooking(ctx, createRequest(1, 2))
	assert.ErrorIs(t, err, ErrDateAlreadyBooked)
	f.repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBooking_UniqueViolationMapsToAlreadyBooked(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.venues.On("GetVenueByIDForUpdate", ctx, int64(1)).Return(activeVenue(1, 3000), nil)
	f.repo.On("HasConfirmedBooking", ctx, int64(1), bookingDate).Return(false, nil)
	f.repo.On("CreateBooking", ctx, mock.Anything).Return(nil, ErrDuplicateConfirmed)

	_, err := f.svc.CreateBooking(ctx, createRequest(1, 2))
	assert.ErrorIs(t, err, ErrDateAlreadyBooked)
	assert.True(t, f.tx.rolledBack)
	f.venues.AssertNotCalled(t, "AddUnavailableDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_BlockFailureRollsBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.venues.On("GetVenueByIDForUpdate", ctx, int64(1)).Return(activeVenue(1, 3000), nil)
	f.repo.On("HasConfirmedBooking", ctx, int64(1), bookingDate).Return(false, nil)
	f.repo.On("CreateBooking", ctx, mock.Anything).Return(&Booking{ID: 1, VenueID: 1}, nil)
	f.venues.On("AddUnavailableDate", ctx, int64(1), bookingDate).Return(errors.New("db down"))

	_, err := f.svc.CreateBooking(ctx, createRequest(1, 2))
	assert.Error(t, err)
	assert.True(t, f.tx.rolledBack)
	f.publisher.AssertNotCalled(t, "PublishJSON", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_SideEffectFailuresAreIgnored(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.venues.On("GetVenueByIDForUpdate", ctx, int64(1)).Return(activeVenue(1, 3000), nil)
	f.repo.On("HasConfirmedBooking", ctx, int64(1), bookingDate).Return(false, nil)
	f.repo.On("CreateBooking", ctx, mock.Anything).Return(&Booking{ID: 3, VenueID: 1, BookingDate: bookingDate, TotalCost: 6000}, nil)
	f.venues.On("AddUnavailableDate", ctx, int64(1), bookingDate).Return(nil)
	f.notifier.On("SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	f.publisher.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	b, err := f.svc.CreateBooking(ctx, createRequest(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), b.ID)
}

func TestCreateBooking_SequentialSecondFails(t *testing.T) {
	ctx := context.Background()
	v := activeVenue(1, 3000)

	repo := new(MockBookingRepo)
	venues := new(MockVenueRepo)
	svc := NewService(repo, venues, &fakeTx{}, nil, nil)

	venues.On("GetVenueByIDForUpdate", ctx, int64(1)).Return(v, nil)
	repo.On("HasConfirmedBooking", ctx, int64(1), bookingDate).Return(false, nil).Once()
	repo.On("CreateBooking", ctx, mock.Anything).Return(&Booking{ID: 1, VenueID: 1, BookingDate: bookingDate, Status: StatusConfirmed}, nil).Once()
	venues.On("AddUnavailableDate", ctx, int64(1), bookingDate).Return(nil).Once()

	_, err := svc.CreateBooking(ctx, createRequest(1, 2))
	require.NoError(t, err)

	// the first booking blocked the date on the shared venue record, so the
	// availability check rejects the second before the booking lookup runs
	_, err = svc.CreateBooking(ctx, createRequest(1, 4))
	assert.ErrorIs(t, err, ErrVenueUnavailable)
	assert.False(t, errors.Is(err, ErrDateAlreadyBooked))
	repo.AssertNumberOfCalls(t, "CreateBooking", 1)
	repo.AssertNumberOfCalls(t, "HasConfirmedBooking", 1)
}

func TestCreateBooking_NilDate(t *testing.T) {
	f := newFixture()
	req := createRequest(1, 3)
	req.BookingDate = nil

	var err error
	assert.NotPanics(t, func() {
		_, err = f.svc.CreateBooking(context.Background(), req)
	})
	assert.ErrorIs(t, err, ErrMissingDate)
	assert.Equal(t, 0, f.tx.calls)
	f.venues.AssertNotCalled(t, "GetVenueByIDForUpdate", mock.Anything, mock.Anything)
}

func TestCreateBooking_CostFixedAfterPriceChange(t *testing.T) {
	ctx := context.Background()
	v := activeVenue(1, 3000)

	repo := new(MockBookingRepo)
	venues := new(MockVenueRepo)
	svc := NewService(repo, venues, &fakeTx{}, nil, nil)

	stored := &Booking{}
	venues.On("GetVenueByIDForUpdate", ctx, int64(1)).Return(v, nil)
	repo.On("HasConfirmedBooking", ctx, int64(1), bookingDate).Return(false, nil)
	repo.On("CreateBooking", ctx, mock.Anything).Run(func(args mock.Arguments) {
		*stored = *args.Get(1).(*Booking)
		stored.ID = 1
	}).Return(stored, nil)
	venues.On("AddUnavailableDate", ctx, int64(1), bookingDate).Return(nil)

	_, err := svc.CreateBooking(ctx, createRequest(1, 3))
	require.NoError(t, err)
	require.Equal(t, 9000.0, stored.TotalCost)

	// the venue is repriced after booking
	v.PricePerHour = 5000
	repo.On("GetBookingByID", ctx, int64(1)).Return(stored, nil)
	venues.On("ListVenuesByIDs", ctx, []int64{1}).Return(map[int64]*venue.Venue{1: v}, nil)

	got, err := svc.GetBookingByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, got.TotalCost)
	assert.Equal(t, 5000.0, got.Venue.PricePerHour)
}

func TestGetBookingByID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("GetBookingByID", ctx, int64(1)).Return(&Booking{ID: 1, VenueID: 7}, nil)
	f.repo.On("GetBookingByID", ctx, int64(2)).Return(nil, sql.ErrNoRows)
	f.venues.On("ListVenuesByIDs", ctx, []int64{7}).Return(map[int64]*venue.Venue{7: {ID: 7, Name: "Amber Palace"}}, nil)

	b, err := f.svc.GetBookingByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, b.Venue)
	assert.Equal(t, "Amber Palace", b.Venue.Name)

	_, err = f.svc.GetBookingByID(ctx, 2)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetAllAndRecentBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("ListBookings", ctx).Return([]Booking{{ID: 1, VenueID: 1}, {ID: 2, VenueID: 2}, {ID: 3, VenueID: 1}}, nil)
	f.repo.On("ListRecentBookings", ctx, RecentLimit).Return([]Booking{}, nil)
	f.venues.On("ListVenuesByIDs", ctx, []int64{1, 2}).Return(map[int64]*venue.Venue{1: {ID: 1}, 2: {ID: 2}}, nil)

	all, err := f.svc.GetAllBookings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(1), all[2].Venue.ID)

	recent, err := f.svc.GetRecentBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, recent)
	f.venues.AssertNumberOfCalls(t, "ListVenuesByIDs", 1)
}

func TestUpdateBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	newDate := availability.NewDate(2025, 7, 26)
	req := UpdateBookingRequest{UserName: "Ravi", UserEmail: "ravi@example.com", BookingDate: &newDate, HoursBooked: 5}

	// stored cost stays at 9000 even though hours changed
	f.repo.On("UpdateBooking", ctx, int64(1), req).Return(&Booking{ID: 1, VenueID: 1, HoursBooked: 5, TotalCost: 9000, BookingDate: newDate}, nil)
	f.repo.On("UpdateBooking", ctx, int64(2), req).Return(nil, sql.ErrNoRows)
	f.repo.On("UpdateBooking", ctx, int64(3), req).Return(nil, ErrDuplicateConfirmed)
	f.venues.On("ListVenuesByIDs", ctx, []int64{1}).Return(map[int64]*venue.Venue{1: activeVenue(1, 3000)}, nil)

	b, err := f.svc.UpdateBooking(ctx, 1, req)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, b.TotalCost)
	f.venues.AssertNotCalled(t, "AddUnavailableDate", mock.Anything, mock.Anything, mock.Anything)
	f.venues.AssertNotCalled(t, "ReplaceUnavailableDates", mock.Anything, mock.Anything, mock.Anything)

	_, err = f.svc.UpdateBooking(ctx, 2, req)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.UpdateBooking(ctx, 3, req)
	assert.ErrorIs(t, err, ErrDateAlreadyBooked)
}

func TestDeleteBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("DeleteBooking", ctx, int64(1)).Return(true, nil)
	f.repo.On("DeleteBooking", ctx, int64(5)).Return(false, nil)
	f.repo.On("DeleteBooking", ctx, int64(6)).Return(false, errors.New("db down"))

	assert.NoError(t, f.svc.DeleteBooking(ctx, 1))
	assert.NoError(t, f.svc.DeleteBooking(ctx, 5))
	assert.Error(t, f.svc.DeleteBooking(ctx, 6))
	f.venues.AssertNotCalled(t, "ReplaceUnavailableDates", mock.Anything, mock.Anything, mock.Anything)
}

func TestListBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	from := availability.NewDate(2025, 7, 1)
	to := availability.NewDate(2025, 7, 31)

	f.repo.On("ListBookings", ctx).Return([]Booking{}, nil)
	f.repo.On("ListByVenue", ctx, int64(4)).Return([]Booking{}, nil)
	f.repo.On("ListByEmail", ctx, "asha@example.com").Return([]Booking{}, nil)
	f.repo.On("ListByDateRange", ctx, from, to).Return([]Booking{}, nil)

	tests := []struct {
		name   string
		filter ListFilter
		err    error
	}{
		{"all", ListFilter{}, nil},
		{"venue", ListFilter{VenueID: 4, Email: "ignored"}, nil},
		{"email", ListFilter{Email: "asha@example.com"}, nil},
		{"range", ListFilter{From: "2025-07-01", To: "2025-07-31"}, nil},
		{"half range", ListFilter{From: "2025-07-01"}, ErrInvalidDateRange},
		{"inverted range", ListFilter{From: "2025-07-31", To: "2025-07-01"}, ErrInvalidDateRange},
		{"bad date", ListFilter{From: "07/01/2025", To: "2025-07-31"}, ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ListBookings(ctx, tt.filter)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
		})
	}
	f.repo.AssertExpectations(t)
}

func TestCountBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("CountBookings", ctx).Return(12, nil)
	f.repo.On("CountConfirmed", ctx).Return(10, nil)

	counts, err := f.svc.CountBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, &CountResponse{Total: 12, Confirmed: 10}, counts)
}

func TestGetStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	from := availability.NewDate(2025, 7, 1)
	to := availability.NewDate(2025, 7, 31)

	f.repo.On("GetStatsByDay", ctx, from, to).Return([]StatsByDay{{Bucket: "2025-07-25", BookingsConfirmed: 1, Revenue: 9000}}, nil)
	f.repo.On("GetStatsByVenue", ctx, from, to).Return([]StatsByVenue{{VenueID: 1, VenueName: "Green Garden Venue", BookingsConfirmed: 1, Revenue: 9000}}, nil)

	stats, err := f.svc.GetStats(ctx, StatsFilter{From: "2025-07-01", To: "2025-07-31"})
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", stats.From)
	require.Len(t, stats.ByDay, 1)
	assert.Equal(t, 9000.0, stats.ByVenue[0].Revenue)

	_, err = f.svc.GetStats(ctx, StatsFilter{From: "2025-07-31", To: "2025-07-01"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
	_, err = f.svc.GetStats(ctx, StatsFilter{From: "yesterday", To: "2025-07-01"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
