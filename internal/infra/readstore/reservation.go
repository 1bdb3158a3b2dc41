package readstore

import (
	"context"
	"errors"
	"log/slog"

	"fleetbook/internal/domain/booking"
	"fleetbook/internal/infra"
	"fleetbook/internal/infra/db"
	"fleetbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewReservationReadStore(dbtx db.DBTX, logger *slog.Logger) *ReservationReadStore {
	return &ReservationReadStore{dbtx: dbtx, logger: logger}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.dbtx.QueryRow(ctx, `
		SELECT id, vehicle_id, customer_id, pickup_date, return_date,
		       pickup_location, dropoff_location, status, price_cents, currency,
		       cancellation_reason, created_at, confirmed_at, cancelled_at, completed_at
		FROM reservations
		WHERE id = $1`, id)

	view, err := scanReservationView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find reservation by id", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*queries.ReservationListItem, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT id, vehicle_id, pickup_date, return_date, status,
		       price_cents, currency, created_at
		FROM reservations
		WHERE customer_id = $1
		ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list customer reservations", err)
	}
	defer rows.Close()

	items := make([]*queries.ReservationListItem, 0)
	for rows.Next() {
		var item queries.ReservationListItem
		if err := rows.Scan(
			&item.ID, &item.VehicleID, &item.PickupDate, &item.ReturnDate,
			&item.Status, &item.PriceCents, &item.Currency, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan reservation row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate reservation rows", err)
	}
	return items, nil
}

// FindBlockingByPeriod mirrors BookingPeriod.OverlapsWith in SQL, inclusive
// on both ends. The query layer re-applies the domain predicate on the rows.
func (r *ReservationReadStore) FindBlockingByPeriod(ctx context.Context, period booking.BookingPeriod) ([]queries.BlockingReservation, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT vehicle_id, pickup_date, return_date
		FROM reservations
		WHERE status IN ('confirmed', 'active')
		  AND pickup_date <= $1
		  AND return_date >= $2`,
		period.ReturnDate(), period.PickupDate())
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query blocking reservations", err)
	}
	defer rows.Close()

	blocking := make([]queries.BlockingReservation, 0)
	for rows.Next() {
		var b queries.BlockingReservation
		if err := rows.Scan(&b.VehicleID, &b.PickupDate, &b.ReturnDate); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan blocking reservation", err)
		}
		blocking = append(blocking, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate blocking reservations", err)
	}
	return blocking, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var view queries.ReservationView
	err := row.Scan(
		&view.ID, &view.VehicleID, &view.CustomerID,
		&view.PickupDate, &view.ReturnDate,
		&view.PickupLocation, &view.DropoffLocation,
		&view.Status, &view.PriceCents, &view.Currency,
		&view.CancellationReason, &view.CreatedAt,
		&view.ConfirmedAt, &view.CancelledAt, &view.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	view.TotalDays = booking.ReconstructBookingPeriod(view.PickupDate, view.ReturnDate).TotalDays()
	return &view, nil
}
