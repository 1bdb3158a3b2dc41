package commands

import (
	"context"
	"log/slog"
	"time"

	"fleetbook/internal/domain/booking"
	"fleetbook/internal/domain/vehicle"
	"fleetbook/internal/infra"
	"fleetbook/internal/pkg/clock"
	"fleetbook/internal/pkg/errs"
	"fleetbook/internal/usecase/queries"
	"fleetbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrVehicleNotFound     = errs.New("vehicle not found")
	ErrReservationConflict = errs.New("conflicting reservation write")
	ErrPricingUnavailable  = errs.New("pricing service unavailable")
	ErrGuestRegistration   = errs.New("guest registration rejected")

	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateReservationParams struct {
	VehicleID       uuid.UUID
	CustomerID      uuid.UUID
	PickupDate      time.Time
	ReturnDate      time.Time
	PickupLocation  string
	DropoffLocation string
	// PriceCents is a pre-quoted total; when nil the pricing service is
	// consulted.
	PriceCents *int64
	Currency   string
}

type CreateGuestReservationParams struct {
	Reservation CreateReservationParams
	Guest       GuestDetails
}

type ReservationCommands interface {
	Create(ctx context.Context, params CreateReservationParams) (*queries.ReservationView, error)
	CreateGuest(ctx context.Context, params CreateGuestReservationParams) (*queries.ReservationView, error)
	Confirm(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*queries.ReservationView, error)
	MarkActive(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	Complete(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	pricing            PricingService
	registrar          CustomerRegistrar
	publisher          EventPublisher
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	pricing PricingService,
	registrar CustomerRegistrar,
	publisher EventPublisher,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		pricing:            pricing,
		registrar:          registrar,
		publisher:          publisher,
		reservationQueries: reservationQueries,
		clock:              clk,
	}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, params CreateReservationParams) (*queries.ReservationView, error) {
	now := c.clock.Now()

	period, err := booking.NewBookingPeriod(params.PickupDate, params.ReturnDate, now)
	if err != nil {
		return nil, err
	}
	pickupLoc, err := booking.NewLocationCode(params.PickupLocation)
	if err != nil {
		return nil, err
	}
	dropoffLoc, err := booking.NewLocationCode(params.DropoffLocation)
	if err != nil {
		return nil, err
	}

	vehicleEntity, err := c.validateAndGetVehicle(ctx, params.VehicleID)
	if err != nil {
		return nil, err
	}

	price, err := c.resolvePrice(ctx, params, vehicleEntity.Category(), period, pickupLoc)
	if err != nil {
		return nil, err
	}

	reservationEntity, ev, err := booking.NewReservation(
		vehicleEntity.ID(),
		params.CustomerID,
		period,
		pickupLoc,
		dropoffLoc,
		price,
		now,
	)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if createErr := tx.Reservations().Create(ctx, reservationEntity); createErr != nil {
			if infra.IsKind(createErr, infra.KindConflict) {
				return ErrReservationConflict
			}
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, ev)
	return c.reservationQueries.GetByID(ctx, reservationEntity.ID())
}

// CreateGuest registers the customer first, then books. Two external calls
// with no automatic compensation: a failed booking leaves the customer
// registered, which downstream dedup on registration tolerates.
func (c *reservationCommandsImpl) CreateGuest(ctx context.Context, params CreateGuestReservationParams) (*queries.ReservationView, error) {
	customerID, err := c.registrar.Register(ctx, params.Guest)
	if err != nil {
		return nil, errs.Mark(err, ErrGuestRegistration)
	}

	reservationParams := params.Reservation
	reservationParams.CustomerID = customerID
	return c.Create(ctx, reservationParams)
}

func (c *reservationCommandsImpl) Confirm(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return c.transition(ctx, id, func(r booking.Reservation, now time.Time) (booking.Reservation, booking.Event, error) {
		return r.Confirm(now)
	})
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, reason string) (*queries.ReservationView, error) {
	return c.transition(ctx, id, func(r booking.Reservation, now time.Time) (booking.Reservation, booking.Event, error) {
		return r.Cancel(reason, now)
	})
}

func (c *reservationCommandsImpl) MarkActive(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return c.transition(ctx, id, func(r booking.Reservation, now time.Time) (booking.Reservation, booking.Event, error) {
		return r.MarkActive(now)
	})
}

func (c *reservationCommandsImpl) Complete(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return c.transition(ctx, id, func(r booking.Reservation, now time.Time) (booking.Reservation, booking.Event, error) {
		return r.Complete(now)
	})
}

func (c *reservationCommandsImpl) MarkNoShow(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return c.transition(ctx, id, func(r booking.Reservation, now time.Time) (booking.Reservation, booking.Event, error) {
		return r.MarkNoShow(now)
	})
}

// transition is the shared shape of every lifecycle command: load, apply one
// domain transition, persist the new value with a version check, publish the
// event after commit.
func (c *reservationCommandsImpl) transition(
	ctx context.Context,
	id uuid.UUID,
	apply func(booking.Reservation, time.Time) (booking.Reservation, booking.Event, error),
) (*queries.ReservationView, error) {
	var ev booking.Event

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		next, event, err := apply(current, c.clock.Now())
		if err != nil {
			return err
		}

		// idempotent no-op (re-cancel): nothing to persist, nothing to emit
		if next.Version() == current.Version() {
			return nil
		}

		if err := tx.Reservations().Update(ctx, next, current.Version()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrReservationConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		ev = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, ev)
	return c.reservationQueries.GetByID(ctx, id)
}

func (c *reservationCommandsImpl) validateAndGetVehicle(ctx context.Context, vehicleID uuid.UUID) (*vehicle.Vehicle, error) {
	snapshot, err := c.uow.Reads().VehicleByID(ctx, vehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return vehicle.NewVehicle(snapshot.ID, snapshot.Plate, snapshot.Model, snapshot.Category)
}

func (c *reservationCommandsImpl) resolvePrice(
	ctx context.Context,
	params CreateReservationParams,
	category vehicle.Category,
	period booking.BookingPeriod,
	pickupLoc booking.LocationCode,
) (booking.Money, error) {
	if params.PriceCents != nil {
		return booking.NewMoney(*params.PriceCents, params.Currency)
	}

	price, err := c.pricing.Quote(ctx, category, period, pickupLoc.String())
	if err != nil {
		return booking.Money{}, errs.Mark(err, ErrPricingUnavailable)
	}
	return price, nil
}

func (c *reservationCommandsImpl) publish(ctx context.Context, ev booking.Event) {
	if ev == nil {
		return
	}
	if err := c.publisher.Publish(ctx, ev); err != nil {
		slog.Warn("failed to publish reservation event",
			"kind", ev.Kind(),
			"reservation_id", ev.ReservationID().String(),
			"error", err.Error())
	}
}
