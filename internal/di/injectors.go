//go:build wireinject
// +build wireinject

package di

import (
	"fsd/internal"
	"fsd/internal/bus"
	"fsd/internal/classify"
	"fsd/internal/controllers"
	"fsd/internal/persistence"
	"fsd/internal/providers"
	"fsd/internal/services"
	"fsd/internal/store"
	"fsd/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		store.NewFileSessionStore,
		store.NewUploader,
		classify.NewVideoLookup,
		bus.NewHub,
		services.NewSessionService,
		persistence.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
