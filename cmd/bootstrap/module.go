package bootstrap

import (
	"fleetbook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	ClientsModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
