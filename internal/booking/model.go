package booking

import (
	"time"

	"github.com/komalrathore0521/BookVenue/internal/availability"
	"github.com/komalrathore0521/BookVenue/internal/venue"
)

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

type Booking struct {
	ID          int64             `db:"id" json:"id"`
	VenueID     int64             `db:"venue_id" json:"venueId"`
	Venue       *venue.Venue      `db:"-" json:"venue,omitempty"`
	UserName    string            `db:"user_name" json:"userName"`
	UserEmail   string            `db:"user_email" json:"userEmail"`
	BookingDate availability.Date `db:"booking_date" json:"bookingDate" swaggertype:"string" example:"2025-07-25"`
	HoursBooked int               `db:"hours_booked" json:"hoursBooked"`
	Status      Status            `db:"status" json:"status" example:"CONFIRMED"`
	TotalCost   float64           `db:"total_cost" json:"totalCost"`
	CreatedAt   time.Time         `db:"created_at" json:"createdAt"`
}

type CreateBookingRequest struct {
	VenueID     int64              `json:"venueId" binding:"required,gt=0" example:"1"`
	UserName    string             `json:"userName" binding:"required" example:"Asha Verma"`
	UserEmail   string             `json:"userEmail" binding:"required" example:"asha@example.com"`
	BookingDate *availability.Date `json:"bookingDate" binding:"required" swaggertype:"string" example:"2025-07-25"`
	HoursBooked int                `json:"hoursBooked" binding:"required,gt=0" example:"3"`
}

// UpdateBookingRequest overwrites the booking's descriptive fields. Cost and
// venue availability are left as they were at creation.
type UpdateBookingRequest struct {
	UserName    string             `json:"userName" binding:"required" example:"Asha Verma"`
	UserEmail   string             `json:"userEmail" binding:"required" example:"asha@example.com"`
	BookingDate *availability.Date `json:"bookingDate" binding:"required" swaggertype:"string" example:"2025-07-26"`
	HoursBooked int                `json:"hoursBooked" binding:"required,gt=0" example:"4"`
}

type CreateBookingResponse struct {
	Message string   `json:"message" example:"Booking confirmed successfully"`
	Booking *Booking `json:"booking"`
}

// ListFilter selects one booking listing. The first populated criterion
// wins: venue, email, then date range.
type ListFilter struct {
	VenueID int64  `form:"venueId" binding:"omitempty,gt=0"`
	Email   string `form:"email"`
	From    string `form:"from"`
	To      string `form:"to"`
}

type CountResponse struct {
	Total     int `json:"total" example:"12"`
	Confirmed int `json:"confirmed" example:"10"`
}

// StatsFilter bounds the statistics window by booking date. Both ends are
// required.
type StatsFilter struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type StatsResponse struct {
	From    string         `json:"from" example:"2025-07-01"`
	To      string         `json:"to" example:"2025-07-31"`
	ByDay   []StatsByDay   `json:"byDay"`
	ByVenue []StatsByVenue `json:"byVenue"`
}
