package readstore

import (
	"context"
	"errors"
	"log/slog"

	"fleetbook/internal/infra"
	"fleetbook/internal/infra/db"
	"fleetbook/internal/usecase/queries"
	"fleetbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VehicleReadStore struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewVehicleReadStore(dbtx db.DBTX, logger *slog.Logger) *VehicleReadStore {
	return &VehicleReadStore{dbtx: dbtx, logger: logger}
}

func (r *VehicleReadStore) ListVehicles(ctx context.Context) ([]*queries.VehicleView, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT id, plate, model, category, created_at
		FROM vehicles
		ORDER BY plate`)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list vehicles", err)
	}
	defer rows.Close()

	vehicles := make([]*queries.VehicleView, 0)
	for rows.Next() {
		var v queries.VehicleView
		if err := rows.Scan(&v.ID, &v.Plate, &v.Model, &v.Category, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan vehicle row", err)
		}
		vehicles = append(vehicles, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate vehicle rows", err)
	}
	return vehicles, nil
}

// FindSnapshotByID serves command-side vehicle validation.
func (r *VehicleReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	row := r.dbtx.QueryRow(ctx, `
		SELECT id, plate, model, category
		FROM vehicles
		WHERE id = $1`, id)

	var snapshot shared.VehicleSnapshot
	if err := row.Scan(&snapshot.ID, &snapshot.Plate, &snapshot.Model, &snapshot.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "vehicle not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find vehicle by id", err)
	}
	return &snapshot, nil
}
