package events

import (
	"context"
	"log/slog"

	"fleetbook/internal/domain/booking"
)

// NoopPublisher is used when Kafka is disabled, e.g. in local development.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, ev booking.Event) error {
	slog.Debug("event publishing disabled, dropping event",
		"kind", ev.Kind(),
		"reservation_id", ev.ReservationID().String())
	return nil
}
