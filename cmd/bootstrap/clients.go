package bootstrap

import (
	"context"

	"fleetbook/internal/infra/cache"
	"fleetbook/internal/infra/customers"
	"fleetbook/internal/infra/events"
	"fleetbook/internal/infra/pricing"
	"fleetbook/internal/pkg/config"
	"fleetbook/internal/usecase/commands"
	"fleetbook/internal/usecase/queries"

	"go.uber.org/fx"
)

// ClientsModule wires everything that talks to the outside world: Kafka,
// Redis, and the platform pricing/customer services.
var ClientsModule = fx.Module("clients",
	fx.Provide(
		NewEventPublisher,
		NewFleetCache,
		NewPricingService,
		NewCustomerRegistrar,
	),
)

func NewPricingService(cfg config.Config) commands.PricingService {
	return pricing.NewClient(cfg.Pricing)
}

func NewCustomerRegistrar(cfg config.Config) commands.CustomerRegistrar {
	return customers.NewClient(cfg.Customers)
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) commands.EventPublisher {
	if !cfg.Kafka.Enabled {
		return events.NoopPublisher{}
	}

	publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}

func NewFleetCache(lc fx.Lifecycle, cfg config.Config) queries.FleetCache {
	if !cfg.Redis.Enabled {
		return nil
	}

	fleetCache := cache.NewRedisFleetCache(cfg.Redis)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return fleetCache.Close()
		},
	})
	return fleetCache
}
