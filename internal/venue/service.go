package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/komalrathore0521/BookVenue/internal/availability"
	"github.com/komalrathore0521/BookVenue/internal/db"
	"github.com/komalrathore0521/BookVenue/internal/logger"
	"github.com/komalrathore0521/BookVenue/internal/metrics"
)

var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrInvalidRange  = errors.New("invalid range: min must not exceed max")
)

type Service interface {
	CreateVenue(ctx context.Context, req CreateVenueRequest) (*Venue, error)
	ImportVenues(ctx context.Context, reqs []CreateVenueRequest) (int, error)
	GetAllVenues(ctx context.Context) ([]Venue, error)
	GetVenueByID(ctx context.Context, id int64) (*Venue, error)
	UpdateVenue(ctx context.Context, id int64, req UpdateVenueRequest) (*Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
	UpdateAvailability(ctx context.Context, id int64, req AvailabilityUpdateRequest) (*Venue, error)
	IsVenueAvailable(ctx context.Context, id int64, date availability.Date) (bool, error)
	ListVenues(ctx context.Context, filter ListFilter) ([]Venue, error)
	GetVenuesByLocation(ctx context.Context, location string) ([]Venue, error)
	GetVenuesByCapacityRange(ctx context.Context, min, max int) ([]Venue, error)
	GetVenuesByPriceRange(ctx context.Context, min, max float64) ([]Venue, error)
	GetVenuesByCreator(ctx context.Context, createdBy string) ([]Venue, error)
	FindByName(ctx context.Context, name string) (*Venue, error)
	CountVenues(ctx context.Context) (*CountResponse, error)
}

type service struct {
	repo Repository
	tx   db.TxRunner
}

func NewService(repo Repository, tx db.TxRunner) Service {
	return &service{
		repo: repo,
		tx:   tx,
	}
}

func (s *service) CreateVenue(ctx context.Context, req CreateVenueRequest) (*Venue, error) {
	created, err := s.insert(ctx, newVenue(req))
	if err != nil {
		return nil, err
	}

	metrics.RecordVenueCreated("api")
	return created, nil
}

// ImportVenues stores all venues or none.
func (s *service) ImportVenues(ctx context.Context, reqs []CreateVenueRequest) (int, error) {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, req := range reqs {
			if _, err := s.insert(ctx, newVenue(req)); err != nil {
				return fmt.Errorf("failed to import venue %q: %w", req.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for range reqs {
		metrics.RecordVenueCreated("seed")
	}
	return len(reqs), nil
}

func newVenue(req CreateVenueRequest) *Venue {
	v := &Venue{
		Name:             req.Name,
		Location:         req.Location,
		Capacity:         req.Capacity,
		PricePerHour:     req.PricePerHour,
		CreatedBy:        req.CreatedBy,
		IsActive:         true,
		UnavailableDates: availability.NewDateSet(req.UnavailableDates...),
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	return v
}

// insert stores v together with its unavailable dates in one transaction.
func (s *service) insert(ctx context.Context, v *Venue) (*Venue, error) {
	var created *Venue
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.CreateVenue(ctx, v)
		if err != nil {
			return fmt.Errorf("failed to insert venue: %w", err)
		}
		if v.UnavailableDates.Len() == 0 {
			return nil
		}
		if err := s.repo.ReplaceUnavailableDates(ctx, created.ID, v.UnavailableDates); err != nil {
			return err
		}
		created.UnavailableDates = v.UnavailableDates.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) GetAllVenues(ctx context.Context) ([]Venue, error) {
	return s.repo.ListActiveVenues(ctx)
}

func (s *service) GetVenueByID(ctx context.Context, id int64) (*Venue, error) {
	v, err := s.repo.GetVenueByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if !v.IsActive {
		return nil, ErrVenueNotFound
	}
	return v, nil
}

func (s *service) UpdateVenue(ctx context.Context, id int64, req UpdateVenueRequest) (*Venue, error) {
	v, err := s.repo.UpdateVenue(ctx, id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// DeleteVenue soft deletes. Unknown ids are not an error.
func (s *service) DeleteVenue(ctx context.Context, id int64) error {
	changed, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if changed {
		metrics.RecordVenueDeactivation()
		logger.Info("venue deactivated", "venue_id", id)
	}
	return nil
}

// UpdateAvailability computes (current ∪ block) \ unblock under a row lock
// and persists the result.
func (s *service) UpdateAvailability(ctx context.Context, id int64, req AvailabilityUpdateRequest) (*Venue, error) {
	var updated *Venue
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		v, err := s.repo.GetVenueByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}

		next := availability.Apply(v.UnavailableDates, req.BlockDates, req.UnblockDates)
		if !next.Equal(v.UnavailableDates) {
			if err := s.repo.ReplaceUnavailableDates(ctx, id, next); err != nil {
				return err
			}
		}

		v.UnavailableDates = next
		updated = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordAvailabilityChange(len(req.BlockDates), len(req.UnblockDates))
	return updated, nil
}

// IsVenueAvailable is false for unknown or inactive venues.
func (s *service) IsVenueAvailable(ctx context.Context, id int64, date availability.Date) (bool, error) {
	v, err := s.repo.GetVenueByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return v.IsAvailableOn(date), nil
}

func (s *service) ListVenues(ctx context.Context, filter ListFilter) ([]Venue, error) {
	switch {
	case filter.Location != "":
		return s.GetVenuesByLocation(ctx, filter.Location)
	case filter.MinCapacity != nil || filter.MaxCapacity != nil:
		if filter.MinCapacity == nil || filter.MaxCapacity == nil {
			return nil, ErrInvalidRange
		}
		return s.GetVenuesByCapacityRange(ctx, *filter.MinCapacity, *filter.MaxCapacity)
	case filter.MinPrice != nil || filter.MaxPrice != nil:
		if filter.MinPrice == nil || filter.MaxPrice == nil {
			return nil, ErrInvalidRange
		}
		return s.GetVenuesByPriceRange(ctx, *filter.MinPrice, *filter.MaxPrice)
	case filter.CreatedBy != "":
		return s.GetVenuesByCreator(ctx, filter.CreatedBy)
	default:
		return s.GetAllVenues(ctx)
	}
}

func (s *service) GetVenuesByLocation(ctx context.Context, location string) ([]Venue, error) {
	return s.repo.ListActiveByLocation(ctx, location)
}

func (s *service) GetVenuesByCapacityRange(ctx context.Context, min, max int) ([]Venue, error) {
	if min > max {
		return nil, ErrInvalidRange
	}
	return s.repo.ListActiveByCapacityRange(ctx, min, max)
}

func (s *service) GetVenuesByPriceRange(ctx context.Context, min, max float64) ([]Venue, error) {
	if min > max {
		return nil, ErrInvalidRange
	}
	return s.repo.ListActiveByPriceRange(ctx, min, max)
}

func (s *service) GetVenuesByCreator(ctx context.Context, createdBy string) ([]Venue, error) {
	return s.repo.ListByCreator(ctx, createdBy)
}

func (s *service) FindByName(ctx context.Context, name string) (*Venue, error) {
	v, err := s.repo.FindByNameIgnoreCase(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *service) CountVenues(ctx context.Context) (*CountResponse, error) {
	total, err := s.repo.CountVenues(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.CountActiveVenues(ctx)
	if err != nil {
		return nil, err
	}
	return &CountResponse{Total: total, Active: active}, nil
}
