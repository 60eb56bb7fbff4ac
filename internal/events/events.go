// Package events publishes booking domain events to a message broker.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/komalrathore0521/BookVenue/internal/config"
	"github.com/komalrathore0521/BookVenue/internal/metrics"
)

const TypeBookingConfirmed = "booking.confirmed"

type BookingConfirmed struct {
	Type        string    `json:"type"`
	BookingID   int64     `json:"bookingId"`
	VenueID     int64     `json:"venueId"`
	VenueName   string    `json:"venueName"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	BookingDate string    `json:"bookingDate"`
	HoursBooked int       `json:"hoursBooked"`
	TotalCost   float64   `json:"totalCost"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

// New builds the publisher selected by cfg.EventsBroker.
func New(cfg *config.Config) (Publisher, error) {
	switch cfg.EventsBroker {
	case "", "none":
		return Noop{}, nil
	case "rabbitmq":
		p, err := NewAMQPPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return nil, err
		}
		return Instrument("rabbitmq", p), nil
	case "kafka":
		return Instrument("kafka", NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)), nil
	default:
		return nil, fmt.Errorf("unknown events broker %q", cfg.EventsBroker)
	}
}

type Noop struct{}

func (Noop) PublishJSON(context.Context, string, any) error { return nil }
func (Noop) Close() error                                  { return nil }

type instrumented struct {
	broker string
	next   Publisher
}

// Instrument counts publish outcomes per broker.
func Instrument(broker string, p Publisher) Publisher {
	return &instrumented{broker: broker, next: p}
}

func (i *instrumented) PublishJSON(ctx context.Context, key string, v any) error {
	if err := i.next.PublishJSON(ctx, key, v); err != nil {
		metrics.RecordEvent(i.broker, "error")
		return err
	}
	metrics.RecordEvent(i.broker, "ok")
	return nil
}

func (i *instrumented) Close() error {
	return i.next.Close()
}
