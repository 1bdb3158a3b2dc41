package booking

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventKindCreated   = "reservation_created"
	EventKindConfirmed = "reservation_confirmed"
	EventKindCancelled = "reservation_cancelled"
	EventKindCompleted = "reservation_completed"
)

// Event is an immutable fact describing a completed state transition. Events
// are returned alongside the new aggregate value; they are not part of the
// aggregate's durable state. The orchestration layer publishes them after a
// successful persist.
type Event interface {
	Kind() string
	ReservationID() uuid.UUID
	OccurredAt() time.Time
}

type eventBase struct {
	reservationID uuid.UUID
	occurredAt    time.Time
}

func (e eventBase) ReservationID() uuid.UUID { return e.reservationID }
func (e eventBase) OccurredAt() time.Time    { return e.occurredAt }

type ReservationCreated struct {
	eventBase
	VehicleID  uuid.UUID
	CustomerID uuid.UUID
	Period     BookingPeriod
	Price      Money
}

func (ReservationCreated) Kind() string { return EventKindCreated }

type ReservationConfirmed struct {
	eventBase
	VehicleID  uuid.UUID
	CustomerID uuid.UUID
	Period     BookingPeriod
}

func (ReservationConfirmed) Kind() string { return EventKindConfirmed }

type ReservationCancelled struct {
	eventBase
	VehicleID  uuid.UUID
	CustomerID uuid.UUID
	Period     BookingPeriod
	Reason     string
}

func (ReservationCancelled) Kind() string { return EventKindCancelled }

type ReservationCompleted struct {
	eventBase
	VehicleID  uuid.UUID
	CustomerID uuid.UUID
	Period     BookingPeriod
}

func (ReservationCompleted) Kind() string { return EventKindCompleted }
