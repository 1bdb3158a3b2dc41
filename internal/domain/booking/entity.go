package booking

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is the aggregate root of the booking lifecycle. It is an
// immutable value: every transition returns a new copy plus the domain event
// describing it, so instances are freely shareable across goroutines. The
// caller persists the returned value; lost-update protection comes from the
// version field checked at save time.
type Reservation struct {
	id              uuid.UUID
	vehicleID       uuid.UUID
	customerID      uuid.UUID
	period          BookingPeriod
	pickupLocation  LocationCode
	dropoffLocation LocationCode
	price           Money
	status          Status

	createdAt          time.Time
	confirmedAt        *time.Time
	cancelledAt        *time.Time
	completedAt        *time.Time
	cancellationReason *string

	version int64
}

const (
	opConfirm  = "confirm"
	opActivate = "activate"
	opComplete = "complete"
	opNoShow   = "mark no-show"
	opCancel   = "cancel"
)

// allowedFrom is the full legal-transition set. Guards are checked here and
// nowhere else, so the table is the single audit point for the state machine.
// Temporal conditions (pickup date reached/passed) are layered on top in the
// individual transition methods.
var allowedFrom = map[string][]Status{
	opConfirm:  {StatusPending},
	opActivate: {StatusConfirmed},
	opComplete: {StatusActive},
	opNoShow:   {StatusConfirmed},
	opCancel:   {StatusPending, StatusConfirmed, StatusActive},
}

func (r Reservation) guard(op string) error {
	for _, s := range allowedFrom[op] {
		if r.status == s {
			return nil
		}
	}
	return &StateConflictError{Current: r.status, Operation: op}
}

// NewReservation creates a Pending reservation and its ReservationCreated
// event. Vehicle and customer are held by reference only.
func NewReservation(
	vehicleID, customerID uuid.UUID,
	period BookingPeriod,
	pickupLocation, dropoffLocation LocationCode,
	price Money,
	now time.Time,
) (Reservation, Event, error) {
	if vehicleID == uuid.Nil {
		return Reservation{}, nil, invalidArgument("vehicle_id", "must not be empty")
	}
	if customerID == uuid.Nil {
		return Reservation{}, nil, invalidArgument("customer_id", "must not be empty")
	}
	if period.IsZero() {
		return Reservation{}, nil, invalidArgument("period", "must not be empty")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Reservation{}, nil, err
	}

	r := Reservation{
		id:              id,
		vehicleID:       vehicleID,
		customerID:      customerID,
		period:          period,
		pickupLocation:  pickupLocation,
		dropoffLocation: dropoffLocation,
		price:           price,
		status:          StatusPending,
		createdAt:       now,
		version:         1,
	}

	ev := ReservationCreated{
		eventBase:  eventBase{reservationID: id, occurredAt: now},
		VehicleID:  vehicleID,
		CustomerID: customerID,
		Period:     period,
		Price:      price,
	}
	return r, ev, nil
}

// ReconstructReservation rebuilds an aggregate from storage. No guards run;
// the stored state is trusted.
func ReconstructReservation(
	id, vehicleID, customerID uuid.UUID,
	period BookingPeriod,
	pickupLocation, dropoffLocation LocationCode,
	price Money,
	status Status,
	createdAt time.Time,
	confirmedAt, cancelledAt, completedAt *time.Time,
	cancellationReason *string,
	version int64,
) Reservation {
	return Reservation{
		id:                 id,
		vehicleID:          vehicleID,
		customerID:         customerID,
		period:             period,
		pickupLocation:     pickupLocation,
		dropoffLocation:    dropoffLocation,
		price:              price,
		status:             status,
		createdAt:          createdAt,
		confirmedAt:        confirmedAt,
		cancelledAt:        cancelledAt,
		completedAt:        completedAt,
		cancellationReason: cancellationReason,
		version:            version,
	}
}

// Confirm moves Pending → Confirmed. Strict: re-confirming fails so workflow
// bugs surface instead of being masked.
func (r Reservation) Confirm(now time.Time) (Reservation, Event, error) {
	if err := r.guard(opConfirm); err != nil {
		return r, nil, err
	}

	next := r
	next.status = StatusConfirmed
	next.confirmedAt = &now
	next.version++

	ev := ReservationConfirmed{
		eventBase:  eventBase{reservationID: r.id, occurredAt: now},
		VehicleID:  r.vehicleID,
		CustomerID: r.customerID,
		Period:     r.period,
	}
	return next, ev, nil
}

// MarkActive moves Confirmed → Active once the pickup date has been reached.
// Same-day activation is allowed. No event is emitted for this transition.
func (r Reservation) MarkActive(today time.Time) (Reservation, Event, error) {
	if err := r.guard(opActivate); err != nil {
		return r, nil, err
	}
	if DateOf(today).Before(r.period.pickupDate) {
		return r, nil, &StateConflictError{Current: r.status, Operation: opActivate, Reason: "pickup date not reached"}
	}

	next := r
	next.status = StatusActive
	next.version++
	return next, nil, nil
}

// Complete moves Active → Completed. Completed is terminal.
func (r Reservation) Complete(now time.Time) (Reservation, Event, error) {
	if err := r.guard(opComplete); err != nil {
		return r, nil, err
	}

	next := r
	next.status = StatusCompleted
	next.completedAt = &now
	next.version++

	ev := ReservationCompleted{
		eventBase:  eventBase{reservationID: r.id, occurredAt: now},
		VehicleID:  r.vehicleID,
		CustomerID: r.customerID,
		Period:     r.period,
	}
	return next, ev, nil
}

// MarkNoShow moves Confirmed → NoShow. The pickup date must be strictly in
// the past: same-day is never a no-show.
func (r Reservation) MarkNoShow(today time.Time) (Reservation, Event, error) {
	if err := r.guard(opNoShow); err != nil {
		return r, nil, err
	}
	if !DateOf(today).After(r.period.pickupDate) {
		return r, nil, &StateConflictError{Current: r.status, Operation: opNoShow, Reason: "pickup date not yet passed"}
	}

	next := r
	next.status = StatusNoShow
	next.version++
	return next, nil, nil
}

// Cancel moves any non-completed reservation to Cancelled. Cancelling an
// already-cancelled reservation is an idempotent no-op: the original reason
// and timestamp are kept and no event is emitted, so retried requests are
// safe.
func (r Reservation) Cancel(reason string, now time.Time) (Reservation, Event, error) {
	if r.status == StatusCancelled {
		return r, nil, nil
	}
	if err := r.guard(opCancel); err != nil {
		return r, nil, err
	}

	next := r
	next.status = StatusCancelled
	next.cancelledAt = &now
	next.cancellationReason = &reason
	next.version++

	ev := ReservationCancelled{
		eventBase:  eventBase{reservationID: r.id, occurredAt: now},
		VehicleID:  r.vehicleID,
		CustomerID: r.customerID,
		Period:     r.period,
		Reason:     reason,
	}
	return next, ev, nil
}

// OverlapsWith delegates to the reservation's period so callers never unwrap
// it manually.
func (r Reservation) OverlapsWith(period BookingPeriod) bool {
	return r.period.OverlapsWith(period)
}

func (r Reservation) ID() uuid.UUID                { return r.id }
func (r Reservation) VehicleID() uuid.UUID         { return r.vehicleID }
func (r Reservation) CustomerID() uuid.UUID        { return r.customerID }
func (r Reservation) Period() BookingPeriod        { return r.period }
func (r Reservation) PickupLocation() LocationCode { return r.pickupLocation }
func (r Reservation) DropoffLocation() LocationCode {
	return r.dropoffLocation
}
func (r Reservation) Price() Money               { return r.price }
func (r Reservation) Status() Status             { return r.status }
func (r Reservation) CreatedAt() time.Time       { return r.createdAt }
func (r Reservation) ConfirmedAt() *time.Time    { return r.confirmedAt }
func (r Reservation) CancelledAt() *time.Time    { return r.cancelledAt }
func (r Reservation) CompletedAt() *time.Time    { return r.completedAt }
func (r Reservation) CancellationReason() *string {
	return r.cancellationReason
}
func (r Reservation) Version() int64 { return r.version }
