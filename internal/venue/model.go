package venue

import (
	"time"

	"github.com/komalrathore0521/BookVenue/internal/availability"
)

type Venue struct {
	ID               int64                `db:"id" json:"id"`
	Name             string               `db:"name" json:"name"`
	Location         string               `db:"location" json:"location"`
	Capacity         int                  `db:"capacity" json:"capacity"`
	PricePerHour     float64              `db:"price_per_hour" json:"pricePerHour"`
	CreatedBy        string               `db:"created_by" json:"createdBy"`
	IsActive         bool                 `db:"is_active" json:"isActive"`
	UnavailableDates availability.DateSet `db:"-" json:"unavailableDates" swaggertype:"array,string"`
	CreatedAt        time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time            `db:"updated_at" json:"updatedAt"`
}

// IsAvailableOn reports whether the venue accepts a new booking on d.
func (v *Venue) IsAvailableOn(d availability.Date) bool {
	return availability.IsAvailable(v.IsActive, v.UnavailableDates, d)
}

type CreateVenueRequest struct {
	Name             string              `json:"name" binding:"required,max=100" example:"Skyline Banquet Hall"`
	Location         string              `json:"location" binding:"required" example:"Mumbai"`
	Capacity         int                 `json:"capacity" binding:"required,gt=0" example:"150"`
	PricePerHour     float64             `json:"pricePerHour" binding:"required,gt=0" example:"3500"`
	CreatedBy        string              `json:"createdBy" binding:"required" example:"Kumari Komal"`
	IsActive         *bool               `json:"isActive,omitempty"`
	UnavailableDates []availability.Date `json:"unavailableDates,omitempty" swaggertype:"array,string"`
}

type UpdateVenueRequest struct {
	Name         string  `json:"name" binding:"required,max=100" example:"Skyline Banquet Hall"`
	Location     string  `json:"location" binding:"required" example:"Mumbai"`
	Capacity     int     `json:"capacity" binding:"required,gt=0" example:"150"`
	PricePerHour float64 `json:"pricePerHour" binding:"required,gt=0" example:"3500"`
}

type AvailabilityUpdateRequest struct {
	BlockDates   []availability.Date `json:"blockDates" swaggertype:"array,string"`
	UnblockDates []availability.Date `json:"unblockDates" swaggertype:"array,string"`
}

type AvailabilityResponse struct {
	VenueID   int64             `json:"venueId" example:"1"`
	Date      availability.Date `json:"date" swaggertype:"string" example:"2025-07-25"`
	Available bool              `json:"available" example:"true"`
}

// ListFilter selects one listing over active venues. The first populated
// criterion wins, in field order.
type ListFilter struct {
	Location    string   `form:"location"`
	MinCapacity *int     `form:"minCapacity" binding:"omitempty,gte=0"`
	MaxCapacity *int     `form:"maxCapacity" binding:"omitempty,gte=0"`
	MinPrice    *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice    *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	CreatedBy   string   `form:"createdBy"`
}

type CountResponse struct {
	Total  int `json:"total" example:"18"`
	Active int `json:"active" example:"17"`
}
