package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fleetbook/internal/pkg/config"
	"fleetbook/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const vehiclesKey = "cache:vehicles"

type RedisFleetCache struct {
	client      *redis.Client
	vehiclesTTL time.Duration
}

func NewRedisFleetCache(cfg config.RedisConfig) *RedisFleetCache {
	return &RedisFleetCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		vehiclesTTL: cfg.VehiclesTTL,
	}
}

var _ queries.FleetCache = (*RedisFleetCache)(nil)

func (c *RedisFleetCache) GetVehicles(ctx context.Context) ([]*queries.VehicleView, error) {
	data, err := c.client.Get(ctx, vehiclesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var vehicles []*queries.VehicleView
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *RedisFleetCache) SetVehicles(ctx context.Context, vehicles []*queries.VehicleView) error {
	payload, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, vehiclesKey, payload, c.vehiclesTTL).Err()
}

func (c *RedisFleetCache) Close() error {
	return c.client.Close()
}
