package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/komalrathore0521/BookVenue/internal/availability"
	"github.com/komalrathore0521/BookVenue/internal/db"
	"github.com/komalrathore0521/BookVenue/internal/events"
	"github.com/komalrathore0521/BookVenue/internal/logger"
	"github.com/komalrathore0521/BookVenue/internal/metrics"
	"github.com/komalrathore0521/BookVenue/internal/venue"
)

var (
	ErrVenueNotFound     = errors.New("venue not found")
	ErrVenueUnavailable  = errors.New("venue is not available on the selected date")
	ErrDateAlreadyBooked = errors.New("venue is already booked on this date")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidDateRange  = errors.New("from and to must both be YYYY-MM-DD dates with from <= to")
	ErrMissingDate       = errors.New("booking date is required")
)

// RecentLimit is the size of the recent bookings listing.
const RecentLimit = 10

// Notifier delivers the confirmation message for a new booking.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, name, venueName, details string, date time.Time) error
}

type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	GetAllBookings(ctx context.Context) ([]Booking, error)
	GetRecentBookings(ctx context.Context) ([]Booking, error)
	GetBookingByID(ctx context.Context, id int64) (*Booking, error)
	UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	ListBookings(ctx context.Context, filter ListFilter) ([]Booking, error)
	GetBookingsByVenue(ctx context.Context, venueID int64) ([]Booking, error)
	GetBookingsByEmail(ctx context.Context, email string) ([]Booking, error)
	GetBookingsByDateRange(ctx context.Context, from, to availability.Date) ([]Booking, error)
	CountBookings(ctx context.Context) (*CountResponse, error)
	GetStats(ctx context.Context, filter StatsFilter) (*StatsResponse, error)
}

type service struct {
	repo      Repository
	venueRepo venue.Repository
	tx        db.TxRunner
	notifier  Notifier
	publisher events.Publisher
}

// NewService wires the booking workflow. notifier and publisher may be nil.
func NewService(repo Repository, venueRepo venue.Repository, tx db.TxRunner, notifier Notifier, publisher events.Publisher) Service {
	return &service{
		repo:      repo,
		venueRepo: venueRepo,
		tx:        tx,
		notifier:  notifier,
		publisher: publisher,
	}
}

// CalculateCost returns the price of hours at pricePerHour.
func CalculateCost(pricePerHour float64, hours int) float64 {
	return pricePerHour * float64(hours)
}

// CreateBooking validates and stores a booking and blocks its date on the
// venue. All writes happen in one transaction with the venue row locked.
func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	if req.BookingDate == nil {
		return nil, ErrMissingDate
	}
	date := *req.BookingDate

	var created *Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		v, err := s.venueRepo.GetVenueByIDForUpdate(ctx, req.VenueID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("failed to load venue: %w", err)
		}

		if !v.IsAvailableOn(date) {
			return ErrVenueUnavailable
		}

		booked, err := s.repo.HasConfirmedBooking(ctx, v.ID, date)
		if err != nil {
			return fmt.Errorf("failed to check existing bookings: %w", err)
		}
		if booked {
			return ErrDateAlreadyBooked
		}

		b, err := s.repo.CreateBooking(ctx, &Booking{
			VenueID:     v.ID,
			UserName:    req.UserName,
			UserEmail:   req.UserEmail,
			BookingDate: date,
			HoursBooked: req.HoursBooked,
			Status:      StatusConfirmed,
			TotalCost:   CalculateCost(v.PricePerHour, req.HoursBooked),
		})
		if err != nil {
			if errors.Is(err, ErrDuplicateConfirmed) {
				return ErrDateAlreadyBooked
			}
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if err := s.venueRepo.AddUnavailableDate(ctx, v.ID, date); err != nil {
			return fmt.Errorf("failed to block venue date: %w", err)
		}
		if v.UnavailableDates == nil {
			v.UnavailableDates = availability.NewDateSet()
		}
		v.UnavailableDates.Block(date)

		b.Venue = v
		created = b
		return nil
	})
	if err != nil {
		metrics.RecordBookingAttempt(outcome(err))
		return nil, err
	}

	s.afterConfirm(ctx, created)
	return created, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrVenueNotFound):
		return "venue_not_found"
	case errors.Is(err, ErrVenueUnavailable):
		return "venue_unavailable"
	case errors.Is(err, ErrDateAlreadyBooked):
		return "date_already_booked"
	default:
		return "error"
	}
}

// afterConfirm runs side effects of a committed booking. Failures are
// logged only.
func (s *service) afterConfirm(ctx context.Context, b *Booking) {
	metrics.RecordBookingConfirmed(b.TotalCost)
	logger.Info("booking confirmed",
		"booking_id", b.ID,
		"venue_id", b.VenueID,
		"date", b.BookingDate.String(),
		"total_cost", b.TotalCost,
	)

	venueName := ""
	if b.Venue != nil {
		venueName = b.Venue.Name
	}

	if s.notifier != nil {
		details := fmt.Sprintf("Hours booked: %d\nTotal cost: %.2f", b.HoursBooked, b.TotalCost)
		if err := s.notifier.SendBookingConfirmation(ctx, b.UserEmail, b.UserName, venueName, details, b.BookingDate.Time()); err != nil {
			logger.Warn("failed to queue booking confirmation", "booking_id", b.ID, "error", err)
		}
	}

	if s.publisher != nil {
		ev := events.BookingConfirmed{
			Type:        events.TypeBookingConfirmed,
			BookingID:   b.ID,
			VenueID:     b.VenueID,
			VenueName:   venueName,
			UserName:    b.UserName,
			UserEmail:   b.UserEmail,
			BookingDate: b.BookingDate.String(),
			HoursBooked: b.HoursBooked,
			TotalCost:   b.TotalCost,
			OccurredAt:  time.Now().UTC(),
		}
		key := fmt.Sprintf("%d", b.VenueID)
		if err := s.publisher.PublishJSON(ctx, key, ev); err != nil {
			logger.Warn("failed to publish booking event", "booking_id", b.ID, "error", err)
		}
	}
}

func (s *service) GetAllBookings(ctx context.Context) ([]Booking, error) {
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachVenues(ctx, bookings)
}

func (s *service) GetRecentBookings(ctx context.Context) ([]Booking, error) {
	bookings, err := s.repo.ListRecentBookings(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}
	return s.attachVenues(ctx, bookings)
}

func (s *service) GetBookingByID(ctx context.Context, id int64) (*Booking, error) {
	b, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	bookings, err := s.attachVenues(ctx, []Booking{*b})
	if err != nil {
		return nil, err
	}
	return &bookings[0], nil
}

// UpdateBooking overwrites the descriptive fields. The stored cost and the
// venue's blocked dates are not revisited.
func (s *service) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*Booking, error) {
	b, err := s.repo.UpdateBooking(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrBookingNotFound
		case errors.Is(err, ErrDuplicateConfirmed):
			return nil, ErrDateAlreadyBooked
		default:
			return nil, err
		}
	}

	bookings, err := s.attachVenues(ctx, []Booking{*b})
	if err != nil {
		return nil, err
	}
	return &bookings[0], nil
}

// DeleteBooking removes the booking. Unknown ids are not an error and the
// venue's blocked date stays blocked.
func (s *service) DeleteBooking(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteBooking(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		metrics.RecordBookingDeletion()
		logger.Info("booking deleted", "booking_id", id)
	}
	return nil
}

func (s *service) ListBookings(ctx context.Context, filter ListFilter) ([]Booking, error) {
	switch {
	case filter.VenueID > 0:
		return s.GetBookingsByVenue(ctx, filter.VenueID)
	case filter.Email != "":
		return s.GetBookingsByEmail(ctx, filter.Email)
	case filter.From != "" || filter.To != "":
		from, errFrom := availability.ParseDate(filter.From)
		to, errTo := availability.ParseDate(filter.To)
		if errFrom != nil || errTo != nil {
			return nil, ErrInvalidDateRange
		}
		return s.GetBookingsByDateRange(ctx, from, to)
	default:
		return s.GetAllBookings(ctx)
	}
}

func (s *service) GetBookingsByVenue(ctx context.Context, venueID int64) ([]Booking, error) {
	bookings, err := s.repo.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return s.attachVenues(ctx, bookings)
}

func (s *service) GetBookingsByEmail(ctx context.Context, email string) ([]Booking, error) {
	bookings, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.attachVenues(ctx, bookings)
}

func (s *service) GetBookingsByDateRange(ctx context.Context, from, to availability.Date) ([]Booking, error) {
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}
	bookings, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.attachVenues(ctx, bookings)
}

func (s *service) CountBookings(ctx context.Context) (*CountResponse, error) {
	total, err := s.repo.CountBookings(ctx)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.repo.CountConfirmed(ctx)
	if err != nil {
		return nil, err
	}
	return &CountResponse{Total: total, Confirmed: confirmed}, nil
}

func (s *service) GetStats(ctx context.Context, filter StatsFilter) (*StatsResponse, error) {
	from, errFrom := availability.ParseDate(filter.From)
	to, errTo := availability.ParseDate(filter.To)
	if errFrom != nil || errTo != nil || from.After(to) {
		return nil, ErrInvalidDateRange
	}

	byDay, err := s.repo.GetStatsByDay(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily stats: %w", err)
	}
	byVenue, err := s.repo.GetStatsByVenue(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load venue stats: %w", err)
	}

	return &StatsResponse{
		From:    from.String(),
		To:      to.String(),
		ByDay:   byDay,
		ByVenue: byVenue,
	}, nil
}

func (s *service) attachVenues(ctx context.Context, bookings []Booking) ([]Booking, error) {
	if len(bookings) == 0 {
		return bookings, nil
	}

	seen := make(map[int64]struct{}, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.VenueID]; !ok {
			seen[b.VenueID] = struct{}{}
			ids = append(ids, b.VenueID)
		}
	}

	venues, err := s.venueRepo.ListVenuesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load venues: %w", err)
	}

	for i := range bookings {
		bookings[i].Venue = venues[bookings[i].VenueID]
	}
	return bookings, nil
}
