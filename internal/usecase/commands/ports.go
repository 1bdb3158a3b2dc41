package commands

import (
	"context"

	"fleetbook/internal/domain/booking"
	"fleetbook/internal/domain/vehicle"

	"github.com/google/uuid"
)

// EventPublisher is the sink for domain events. Publishing happens after a
// successful persist; a publish failure never rolls back the transition.
type EventPublisher interface {
	Publish(ctx context.Context, ev booking.Event) error
}

// PricingService quotes the total rental price for a vehicle category over a
// period. The quote is treated as an opaque price input; the core never
// recomputes or validates it.
type PricingService interface {
	Quote(ctx context.Context, category vehicle.Category, period booking.BookingPeriod, pickupLocation string) (booking.Money, error)
}

// CustomerRegistrar registers a guest customer with the platform's customer
// service. Used only on the guest-booking path.
type CustomerRegistrar interface {
	Register(ctx context.Context, details GuestDetails) (uuid.UUID, error)
}

type GuestDetails struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DriverLicense string
}
