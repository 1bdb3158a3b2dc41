// Package events publishes reservation lifecycle events to Kafka. Messages
// are keyed by reservation id so all events of one reservation land on the
// same partition in order.
package events

import (
	"context"
	"encoding/json"
	"time"

	"fleetbook/internal/domain/booking"
	"fleetbook/internal/pkg/errs"
	"fleetbook/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

type envelope struct {
	Kind          string    `json:"kind"`
	ReservationID string    `json:"reservation_id"`
	OccurredAt    time.Time `json:"occurred_at"`

	VehicleID  string `json:"vehicle_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	PickupDate string `json:"pickup_date,omitempty"`
	ReturnDate string `json:"return_date,omitempty"`
	PriceCents int64  `json:"price_cents,omitempty"`
	Currency   string `json:"currency,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

var _ commands.EventPublisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) Publish(ctx context.Context, ev booking.Event) error {
	payload, err := json.Marshal(toEnvelope(ev))
	if err != nil {
		return errs.Wrap(err, "failed to marshal reservation event")
	}

	msg := kafka.Message{
		Key:   []byte(ev.ReservationID().String()),
		Value: payload,
		Time:  ev.OccurredAt(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrap(err, "failed to write reservation event")
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toEnvelope(ev booking.Event) envelope {
	env := envelope{
		Kind:          ev.Kind(),
		ReservationID: ev.ReservationID().String(),
		OccurredAt:    ev.OccurredAt(),
	}

	const dateFormat = "2006-01-02"

	switch e := ev.(type) {
	case booking.ReservationCreated:
		env.VehicleID = e.VehicleID.String()
		env.CustomerID = e.CustomerID.String()
		env.PickupDate = e.Period.PickupDate().Format(dateFormat)
		env.ReturnDate = e.Period.ReturnDate().Format(dateFormat)
		env.PriceCents = e.Price.Cents()
		env.Currency = e.Price.Currency()
	case booking.ReservationConfirmed:
		env.VehicleID = e.VehicleID.String()
		env.CustomerID = e.CustomerID.String()
		env.PickupDate = e.Period.PickupDate().Format(dateFormat)
		env.ReturnDate = e.Period.ReturnDate().Format(dateFormat)
	case booking.ReservationCancelled:
		env.VehicleID = e.VehicleID.String()
		env.CustomerID = e.CustomerID.String()
		env.PickupDate = e.Period.PickupDate().Format(dateFormat)
		env.ReturnDate = e.Period.ReturnDate().Format(dateFormat)
		env.Reason = e.Reason
	case booking.ReservationCompleted:
		env.VehicleID = e.VehicleID.String()
		env.CustomerID = e.CustomerID.String()
		env.PickupDate = e.Period.PickupDate().Format(dateFormat)
		env.ReturnDate = e.Period.ReturnDate().Format(dateFormat)
	}
	return env
}
