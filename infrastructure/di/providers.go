package di

import (
	"context"
	"fmt"
	"time"

	"coursemap-backend/application/commands"
	commandbus "coursemap-backend/application/commands/bus"
	commands_handlers "coursemap-backend/application/commands/handlers"
	"coursemap-backend/application/ports"
	"coursemap-backend/application/queries"
	querybus "coursemap-backend/application/queries/bus"
	queries_handlers "coursemap-backend/application/queries/handlers"
	"coursemap-backend/application/services"
	"coursemap-backend/infrastructure/config"
	"coursemap-backend/infrastructure/messaging/eventbridge"
	dynamosource "coursemap-backend/infrastructure/persistence/dynamodb"
	"coursemap-backend/infrastructure/persistence/jsonsource"
	"coursemap-backend/infrastructure/persistence/memory"
	"coursemap-backend/pkg/auth"
	"coursemap-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTracer creates the tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("coursemap")
}

// ProvideMetrics creates the metrics instance. With metrics disabled the
// CloudWatch client is left nil, which turns every emit into a no-op.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	namespace := fmt.Sprintf("Coursemap/%s", cfg.Environment)
	if !cfg.EnableMetrics {
		return observability.NewMetrics(namespace, nil)
	}
	return observability.NewMetrics(namespace, client)
}

// ProvideCatalogSource selects the catalog source from configuration
func ProvideCatalogSource(
	cfg *config.Config,
	client *awsdynamodb.Client,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (ports.CatalogSource, error) {
	switch cfg.CatalogSource {
	case config.SourceJSON:
		return jsonsource.NewLoader(cfg.CoursesURL, cfg.ProgramsURL, logger), nil
	case config.SourceDynamoDB:
		return dynamosource.NewCatalogSource(client, cfg.CatalogTable, tracer, logger), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}

// ProvideSessionStore creates the session store. With a sessions table
// configured, sessions live in DynamoDB so separate processes (the HTTP
// Lambda and the WebSocket interact Lambda) share them; otherwise they stay
// in process memory.
func ProvideSessionStore(cfg *config.Config, client *awsdynamodb.Client) ports.SessionStore {
	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	if cfg.SessionsTable != "" {
		return dynamosource.NewSessionStore(client, cfg.SessionsTable, ttl)
	}
	return memory.NewSessionStore(ttl)
}

// ProvideEventBus creates an event bus; local setups without a configured
// bus name get the discarding implementation.
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	if cfg.EventBusName == "" {
		return eventbridge.NewNoopBus(logger)
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideInMemoryCache creates a simple in-memory cache
// In production, this would be Redis or similar
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideCatalogService creates the catalog service
func ProvideCatalogService(
	source ports.CatalogSource,
	bus ports.EventBus,
	cache ports.Cache,
	logger *zap.Logger,
) *services.CatalogService {
	return services.NewCatalogService(source, bus, cache, logger)
}

// ProvideGraphService creates the graph service
func ProvideGraphService(
	catalogs *services.CatalogService,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.GraphService {
	return services.NewGraphService(catalogs, metrics, logger)
}

// ProvideSessionService creates the session service
func ProvideSessionService(
	catalogs *services.CatalogService,
	graphs *services.GraphService,
	store ports.SessionStore,
	bus ports.EventBus,
	logger *zap.Logger,
) *services.SessionService {
	return services.NewSessionService(catalogs, graphs, store, bus, logger)
}

// ProvideJWTValidator creates the validator guarding admin endpoints. With
// no secret configured (local development; config.Validate requires one in
// production) the validator is nil and the admin middleware rejects every
// request.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if cfg.JWTSecret == "" {
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideRateLimiter creates the per-IP rate limiter for the public API
func ProvideRateLimiter() *auth.SlidingWindowLimiter {
	return auth.NewIPRateLimiter(120)
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, commandbus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd commandbus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	catalogs *services.CatalogService,
	logger *zap.Logger,
) (*commandbus.CommandBus, error) {
	commandBus := commandbus.NewCommandBus()

	reloadHandler := commands_handlers.NewReloadCatalogHandler(catalogs, logger)
	err := commandBus.Register(commands.ReloadCatalogCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd commandbus.Command) error {
			reloadCmd, ok := cmd.(commands.ReloadCatalogCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return reloadHandler.Handle(ctx, reloadCmd)
		},
	})
	if err != nil {
		return nil, err
	}

	return commandBus, nil
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers. The graph
// data handler is wrapped in the caching middleware; the query's cache key
// includes the catalog version, so stale entries die with the old catalog.
func ProvideQueryBus(
	catalogs *services.CatalogService,
	graphs *services.GraphService,
	cache ports.Cache,
	cfg *config.Config,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()

	listProgramsHandler := queries_handlers.NewListProgramsHandler(catalogs)
	if err := queryBus.Register(queries.ListProgramsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListProgramsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listProgramsHandler.Handle(ctx, listQuery)
		},
	}); err != nil {
		return nil, err
	}

	getCourseHandler := queries_handlers.NewGetCourseHandler(catalogs)
	if err := queryBus.Register(queries.GetCourseQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetCourseQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getCourseHandler.Handle(ctx, getQuery)
		},
	}); err != nil {
		return nil, err
	}

	caching := querybus.NewCachingMiddleware(cache, cfg.CacheTTL)
	getGraphDataHandler := queries_handlers.NewGetGraphDataHandler(graphs)
	cachedGraphData := caching.Wrap(&QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetGraphDataQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getGraphDataHandler.Handle(ctx, getQuery)
		},
	})
	if err := queryBus.Register(queries.GetGraphDataQuery{}, cachedGraphData); err != nil {
		return nil, err
	}

	searchHandler := queries_handlers.NewSearchCourseHandler(graphs)
	if err := queryBus.Register(queries.SearchCourseQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			searchQuery, ok := query.(queries.SearchCourseQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return searchHandler.Handle(ctx, searchQuery)
		},
	}); err != nil {
		return nil, err
	}

	return queryBus, nil
}
