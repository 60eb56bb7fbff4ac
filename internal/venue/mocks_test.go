package venue

import (
	"context"

	"github.com/komalrathore0521/BookVenue/internal/availability"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct{ mock.Mock }

func (m *MockRepository) CreateVenue(ctx context.Context, v *Venue) (*Venue, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Venue), args.Error(1)
}

func (m *MockRepository) GetVenueByID(ctx context.Context, id int64) (*Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Venue), args.Error(1)
}

func (m *MockRepository) GetVenueByIDForUpdate(ctx context.Context, id int64) (*Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Venue), args.Error(1)
}

func (m *MockRepository) FindByNameIgnoreCase(ctx context.Context, name string) (*Venue, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Venue), args.Error(1)
}

func (m *MockRepository) ListActiveVenues(ctx context.Context) ([]Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockRepository) ListActiveByLocation(ctx context.Context, location string) ([]Venue, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockRepository) ListActiveByCapacityRange(ctx context.Context, min, max int) ([]Venue, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockRepository) ListActiveByPriceRange(ctx context.Context, min, max float64) ([]Venue, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockRepository) ListByCreator(ctx context.Context, createdBy string) ([]Venue, error) {
	args := m.Called(ctx, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockRepository) ListVenuesByIDs(ctx context.Context, ids []int64) (map[int64]*Venue, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*Venue), args.Error(1)
}

func (m *MockRepository) UpdateVenue(ctx context.Context, id int64, req UpdateVenueRequest) (*Venue, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Venue), args.Error(1)
}

func (m *MockRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ReplaceUnavailableDates(ctx context.Context, venueID int64, dates availability.DateSet) error {
	return m.Called(ctx, venueID, dates).Error(0)
}

func (m *MockRepository) AddUnavailableDate(ctx context.Context, venueID int64, d availability.Date) error {
	return m.Called(ctx, venueID, d).Error(0)
}

func (m *MockRepository) CountVenues(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountActiveVenues(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// fakeTx runs fn directly; the repository mocks stand in for the database.
type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type MockService struct{ mock.Mock }

func (m *MockService) CreateVenue(ctx context.Context, req CreateVenueRequest) (*Venue, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Venue), args.Error(1)
}

func (m *MockService) ImportVenues(ctx context.Context, reqs []CreateVenueRequest) (int, error) {
	args := m.Called(ctx, reqs)
	return args.Int(0), args.Error(1)
}

func (m *MockService) GetAllVenues(ctx context.Context) ([]Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockService) GetVenueByID(ctx context.Context, id int64) (*Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Venue), args.Error(1)
}

func (m *MockService) UpdateVenue(ctx context.Context, id int64, req UpdateVenueRequest) (*Venue, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Venue), args.Error(1)
}

func (m *MockService) DeleteVenue(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) UpdateAvailability(ctx context.Context, id int64, req AvailabilityUpdateRequest) (*Venue, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Venue), args.Error(1)
}

func (m *MockService) IsVenueAvailable(ctx context.Context, id int64, date availability.Date) (bool, error) {
	args := m.Called(ctx, id, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockService) ListVenues(ctx context.Context, filter ListFilter) ([]Venue, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockService) GetVenuesByLocation(ctx context.Context, location string) ([]Venue, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockService) GetVenuesByCapacityRange(ctx context.Context, min, max int) ([]Venue, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockService) GetVenuesByPriceRange(ctx context.Context, min, max float64) ([]Venue, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockService) GetVenuesByCreator(ctx context.Context, createdBy string) ([]Venue, error) {
	args := m.Called(ctx, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockService) FindByName(ctx context.Context, name string) (*Venue, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Venue), args.Error(1)
}

func (m *MockService) CountVenues(ctx context.Context) (*CountResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CountResponse), args.Error(1)
}
