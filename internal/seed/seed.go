// Package seed loads the sample venue catalogue into an empty store.
package seed

import (
	"context"
	"fmt"

	"github.com/komalrathore0521/BookVenue/internal/availability"
	"github.com/komalrathore0521/BookVenue/internal/booking"
	"github.com/komalrathore0521/BookVenue/internal/logger"
	"github.com/komalrathore0521/BookVenue/internal/venue"
)

const createdBy = "Kumari Komal"

type VenueImporter interface {
	CountVenues(ctx context.Context) (*venue.CountResponse, error)
	ImportVenues(ctx context.Context, reqs []venue.CreateVenueRequest) (int, error)
}

type BookingCounter interface {
	CountBookings(ctx context.Context) (*booking.CountResponse, error)
}

// Run imports SampleVenues when no venue exists yet, including soft-deleted
// ones. It reports how many venues were created.
func Run(ctx context.Context, venues VenueImporter, bookings BookingCounter) (int, error) {
	counts, err := venues.CountVenues(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}

	if counts.Total > 0 {
		fields := []any{"venues", counts.Total, "active_venues", counts.Active}
		if bc, err := bookings.CountBookings(ctx); err != nil {
			logger.Warn("failed to count bookings", "error", err)
		} else {
			fields = append(fields, "bookings", bc.Total)
		}
		logger.Info("store already has data, skipping seed", fields...)
		return 0, nil
	}

	logger.Info("store is empty, seeding sample venues")
	n, err := venues.ImportVenues(ctx, SampleVenues())
	if err != nil {
		return 0, fmt.Errorf("failed to seed venues: %w", err)
	}

	logger.Info("sample venues created", "count", n)
	return n, nil
}

// SampleVenues returns the bootstrap catalogue.
func SampleVenues() []venue.CreateVenueRequest {
	d := availability.NewDate
	return []venue.CreateVenueRequest{
		sample("Skyline Banquet Hall", "Mumbai", 150, 3500, d(2025, 7, 25), d(2025, 8, 1)),
		sample("Royal Orchid Hall", "Delhi", 200, 4000),
		sample("The Grand Pavilion", "Bangalore", 180, 4500, d(2025, 7, 21), d(2025, 7, 28)),
		sample("Lotus Convention Center", "Chennai", 300, 6000),
		sample("Ocean Breeze", "Goa", 100, 5000),
		sample("Sunset Rooftop", "Pune", 80, 2500, d(2025, 7, 20)),
		sample("Green Garden Venue", "Nagpur", 120, 3000),
		sample("White Pearl Banquet", "Ahmedabad", 110, 3300),
		sample("Velvet Lounge", "Jaipur", 130, 3400),
		sample("Palm Valley Hall", "Kolkata", 160, 3600, d(2025, 7, 22)),
		sample("Amber Palace", "Udaipur", 140, 3900),
		sample("Cityscape Terrace", "Noida", 100, 3200),
		sample("Serene Valley", "Nashik", 105, 3100),
		sample("Moonlight Venue", "Lucknow", 125, 3300),
		sample("Heritage Courtyard", "Hyderabad", 90, 2800),
		sample("Urban Nest", "Indore", 75, 2100),
		sample("Blue Lagoon Hall", "Thane", 95, 2700),
		sample("Harmony Hall", "Surat", 115, 2950, d(2025, 7, 23)),
	}
}

func sample(name, location string, capacity int, price float64, blocked ...availability.Date) venue.CreateVenueRequest {
	active := true
	return venue.CreateVenueRequest{
		Name:             name,
		Location:         location,
		Capacity:         capacity,
		PricePerHour:     price,
		CreatedBy:        createdBy,
		IsActive:         &active,
		UnavailableDates: blocked,
	}
}
