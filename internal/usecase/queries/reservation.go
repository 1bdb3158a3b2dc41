package queries

import (
	"context"
	"time"

	"fleetbook/internal/domain/booking"
	"fleetbook/internal/infra"
	"fleetbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

// Read models (DTO for read side)
type ReservationView struct {
	ID                 uuid.UUID  `json:"id"`
	VehicleID          uuid.UUID  `json:"vehicle_id"`
	CustomerID         uuid.UUID  `json:"customer_id"`
	PickupDate         time.Time  `json:"pickup_date"`
	ReturnDate         time.Time  `json:"return_date"`
	TotalDays          int        `json:"total_days"`
	PickupLocation     string     `json:"pickup_location"`
	DropoffLocation    string     `json:"dropoff_location"`
	Status             string     `json:"status"`
	PriceCents         int64      `json:"price_cents"`
	Currency           string     `json:"currency"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

type ReservationListItem struct {
	ID         uuid.UUID `json:"id"`
	VehicleID  uuid.UUID `json:"vehicle_id"`
	PickupDate time.Time `json:"pickup_date"`
	ReturnDate time.Time `json:"return_date"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"price_cents"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

// BlockingReservation is the projection the availability scan works on:
// only what the overlap test and the result set need.
type BlockingReservation struct {
	VehicleID  uuid.UUID
	PickupDate time.Time
	ReturnDate time.Time
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*ReservationListItem, error)
	// Availability returns the deduplicated set of vehicle ids that are
	// unavailable for the candidate period because a confirmed or active
	// reservation overlaps it.
	Availability(ctx context.Context, period booking.BookingPeriod) ([]uuid.UUID, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*ReservationListItem, error)
	// FindBlockingByPeriod pre-filters on the SQL mirror of the overlap
	// predicate; the query layer re-applies the domain predicate so the two
	// can never disagree at the boundary.
	FindBlockingByPeriod(ctx context.Context, period booking.BookingPeriod) ([]BlockingReservation, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Wrap(err, "failed to find reservation")
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*ReservationListItem, error) {
	items, err := q.store.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list customer reservations")
	}
	return items, nil
}

func (q *reservationQueriesImpl) Availability(ctx context.Context, period booking.BookingPeriod) ([]uuid.UUID, error) {
	rows, err := q.store.FindBlockingByPeriod(ctx, period)
	if err != nil {
		return nil, errs.Wrap(err, "failed to scan blocking reservations")
	}

	seen := make(map[uuid.UUID]struct{}, len(rows))
	unavailable := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		existing := booking.ReconstructBookingPeriod(row.PickupDate, row.ReturnDate)
		if !existing.OverlapsWith(period) {
			continue
		}
		if _, ok := seen[row.VehicleID]; ok {
			continue
		}
		seen[row.VehicleID] = struct{}{}
		unavailable = append(unavailable, row.VehicleID)
	}
	return unavailable, nil
}
