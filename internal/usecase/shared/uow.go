package shared

import (
	"context"

	"fleetbook/internal/domain/booking"

	"github.com/google/uuid"
)

// UnitOfWork wraps write operations in a transaction with retry on
// serialization failures. Reads gives direct access to command-side
// validation reads outside a transaction.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Reads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
}

// ReservationRepository is the write-side port. Update enforces optimistic
// concurrency against the version loaded with the aggregate; a mismatch is
// reported as a conflict, never silently overwritten.
type ReservationRepository interface {
	Create(ctx context.Context, res booking.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (booking.Reservation, error)
	Update(ctx context.Context, res booking.Reservation, expectedVersion int64) error
}

// CommandReads are the minimal snapshot reads the write side needs for
// validation, kept separate from the query-side view repositories.
type CommandReads interface {
	VehicleByID(ctx context.Context, id uuid.UUID) (*VehicleSnapshot, error)
}

type VehicleSnapshot struct {
	ID       uuid.UUID
	Plate    string
	Model    string
	Category string
}
