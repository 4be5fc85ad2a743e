//go:build wireinject
// +build wireinject

package di

import (
	"context"

	commandbus "coursemap-backend/application/commands/bus"
	"coursemap-backend/application/ports"
	querybus "coursemap-backend/application/queries/bus"
	"coursemap-backend/application/services"
	"coursemap-backend/infrastructure/config"
	"coursemap-backend/pkg/auth"
	"coursemap-backend/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Catalogs     *services.CatalogService
	Graphs       *services.GraphService
	Sessions     *services.SessionService
	SessionStore ports.SessionStore
	EventBus     ports.EventBus
	CommandBus   *commandbus.CommandBus
	QueryBus     *querybus.QueryBus
	Cache        ports.Cache
	Metrics      *observability.Metrics
	Tracer       *observability.Tracer
	JWTValidator *auth.JWTValidator
	RateLimiter  *auth.SlidingWindowLimiter
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideTracer,
	ProvideMetrics,
	ProvideCatalogSource,
	ProvideSessionStore,
	ProvideEventBus,
	ProvideInMemoryCache,
	ProvideCatalogService,
	ProvideGraphService,
	ProvideSessionService,
	ProvideJWTValidator,
	ProvideRateLimiter,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
