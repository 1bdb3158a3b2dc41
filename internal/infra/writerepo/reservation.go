package writerepo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fleetbook/internal/domain/booking"
	"fleetbook/internal/infra"
	"fleetbook/internal/infra/db"
	"fleetbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeExclusionViolation  = "23P01"
)

type ReservationRepository struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewReservationRepository(dbtx db.DBTX, logger *slog.Logger) shared.ReservationRepository {
	return &ReservationRepository{dbtx: dbtx, logger: logger}
}

func (r *ReservationRepository) Create(ctx context.Context, res booking.Reservation) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO reservations (
			id, vehicle_id, customer_id, pickup_date, return_date,
			pickup_location, dropoff_location, price_cents, currency,
			status, created_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		res.ID(), res.VehicleID(), res.CustomerID(),
		res.Period().PickupDate(), res.Period().ReturnDate(),
		res.PickupLocation().String(), res.DropoffLocation().String(),
		res.Price().Cents(), res.Price().Currency(),
		res.Status().String(), res.CreatedAt(), res.Version(),
	)
	if err != nil {
		return r.mapWriteError(err, "failed to insert reservation")
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (booking.Reservation, error) {
	row := r.dbtx.QueryRow(ctx, `
		SELECT id, vehicle_id, customer_id, pickup_date, return_date,
		       pickup_location, dropoff_location, price_cents, currency,
		       status, cancellation_reason, created_at,
		       confirmed_at, cancelled_at, completed_at, version
		FROM reservations
		WHERE id = $1
		FOR UPDATE`, id)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Reservation{}, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return booking.Reservation{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load reservation", err)
	}
	return res, nil
}

// Update persists a new aggregate value guarded by the version loaded with
// it. Zero rows affected means another writer advanced the version first.
func (r *ReservationRepository) Update(ctx context.Context, res booking.Reservation, expectedVersion int64) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE reservations
		SET status = $1,
		    cancellation_reason = $2,
		    confirmed_at = $3,
		    cancelled_at = $4,
		    completed_at = $5,
		    version = $6
		WHERE id = $7 AND version = $8`,
		res.Status().String(), res.CancellationReason(),
		res.ConfirmedAt(), res.CancelledAt(), res.CompletedAt(),
		res.Version(), res.ID(), expectedVersion,
	)
	if err != nil {
		return r.mapWriteError(err, "failed to update reservation")
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "reservation version mismatch", nil)
	}
	return nil
}

func (r *ReservationRepository) mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeExclusionViolation:
			return infra.WrapRepoErr(r.logger, infra.KindConflict, "overlapping blocking reservation", err)
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "duplicate reservation", err)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, "referenced row missing", err)
		}
	}
	return infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
}

func scanReservation(row pgx.Row) (booking.Reservation, error) {
	var (
		id, vehicleID, customerID       uuid.UUID
		pickupDate, returnDate          time.Time
		pickupLocation, dropoffLocation string
		priceCents                      int64
		currency, status                string
		cancellationReason              *string
		createdAt                       time.Time
		confirmedAt                     *time.Time
		cancelledAt                     *time.Time
		completedAt                     *time.Time
		version                         int64
	)

	err := row.Scan(
		&id, &vehicleID, &customerID, &pickupDate, &returnDate,
		&pickupLocation, &dropoffLocation, &priceCents, &currency,
		&status, &cancellationReason, &createdAt,
		&confirmedAt, &cancelledAt, &completedAt, &version,
	)
	if err != nil {
		return booking.Reservation{}, err
	}

	return booking.ReconstructReservation(
		id, vehicleID, customerID,
		booking.ReconstructBookingPeriod(pickupDate, returnDate),
		booking.ReconstructLocationCode(pickupLocation),
		booking.ReconstructLocationCode(dropoffLocation),
		booking.ReconstructMoney(priceCents, currency),
		booking.Status(status),
		createdAt,
		confirmedAt, cancelledAt, completedAt,
		cancellationReason,
		version,
	), nil
}
