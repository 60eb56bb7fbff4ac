package venue

import (
	"context"

	"github.com/komalrathore0521/BookVenue/internal/availability"
)

type Repository interface {
	CreateVenue(ctx context.Context, v *Venue) (*Venue, error)
	GetVenueByID(ctx context.Context, id int64) (*Venue, error)
	GetVenueByIDForUpdate(ctx context.Context, id int64) (*Venue, error)
	FindByNameIgnoreCase(ctx context.Context, name string) (*Venue, error)
	ListActiveVenues(ctx context.Context) ([]Venue, error)
	ListActiveByLocation(ctx context.Context, location string) ([]Venue, error)
	ListActiveByCapacityRange(ctx context.Context, min, max int) ([]Venue, error)
	ListActiveByPriceRange(ctx context.Context, min, max float64) ([]Venue, error)
	ListByCreator(ctx context.Context, createdBy string) ([]Venue, error)
	ListVenuesByIDs(ctx context.Context, ids []int64) (map[int64]*Venue, error)
	UpdateVenue(ctx context.Context, id int64, req UpdateVenueRequest) (*Venue, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
	ReplaceUnavailableDates(ctx context.Context, venueID int64, dates availability.DateSet) error
	AddUnavailableDate(ctx context.Context, venueID int64, d availability.Date) error
	CountVenues(ctx context.Context) (int, error)
	CountActiveVenues(ctx context.Context) (int, error)
}

var _ Repository = (*PostgresRepository)(nil)
