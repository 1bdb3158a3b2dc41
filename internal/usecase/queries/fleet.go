package queries

import (
	"context"
	"log/slog"
	"time"

	"fleetbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type VehicleView struct {
	ID        uuid.UUID `json:"id"`
	Plate     string    `json:"plate"`
	Model     string    `json:"model"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type FleetQueries interface {
	ListVehicles(ctx context.Context) ([]*VehicleView, error)
}

type VehicleReadStore interface {
	ListVehicles(ctx context.Context) ([]*VehicleView, error)
}

// FleetCache is a read-through cache for the vehicle listing. A miss returns
// (nil, nil); cache failures degrade to the read store.
type FleetCache interface {
	GetVehicles(ctx context.Context) ([]*VehicleView, error)
	SetVehicles(ctx context.Context, vehicles []*VehicleView) error
}

type fleetQueriesImpl struct {
	store VehicleReadStore
	cache FleetCache
}

func NewFleetQueries(store VehicleReadStore, cache FleetCache) FleetQueries {
	return &fleetQueriesImpl{store: store, cache: cache}
}

func (q *fleetQueriesImpl) ListVehicles(ctx context.Context) ([]*VehicleView, error) {
	if q.cache != nil {
		cached, err := q.cache.GetVehicles(ctx)
		if err != nil {
			slog.Warn("fleet cache read failed", "error", err.Error())
		} else if cached != nil {
			return cached, nil
		}
	}

	vehicles, err := q.store.ListVehicles(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list vehicles")
	}

	if q.cache != nil {
		if err := q.cache.SetVehicles(ctx, vehicles); err != nil {
			slog.Warn("fleet cache write failed", "error", err.Error())
		}
	}
	return vehicles, nil
}
