package services

import (
	"context"
	"sync"

	"coursemap-backend/application/ports"
	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/events"
	pkgerrors "coursemap-backend/pkg/errors"

	"go.uber.org/zap"
)

// CatalogService owns the loaded catalog. The catalog itself is immutable;
// a reload builds a fresh one and swaps the pointer, bumping a version that
// query caching keys on.
type CatalogService struct {
	source ports.CatalogSource
	bus    ports.EventBus
	cache  ports.Cache
	logger *zap.Logger

	mu      sync.RWMutex
	current *catalog.Catalog
	version int64
}

// NewCatalogService creates a catalog service. Call Load before serving.
func NewCatalogService(source ports.CatalogSource, bus ports.EventBus, cache ports.Cache, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		bus:    bus,
		cache:  cache,
		logger: logger,
	}
}

// Load fetches the course and program data and swaps in a new catalog. A
// source failure leaves the previous catalog (if any) in place and is fatal
// for initialization: no partial data is ever served.
func (s *CatalogService) Load(ctx context.Context) error {
	courses, programs, err := s.source.Load(ctx)
	if err != nil {
		return pkgerrors.NewDataSourceError("catalog load failed", err)
	}

	built := catalog.New(courses, programs)

	s.mu.Lock()
	s.current = built
	s.version++
	version := s.version
	s.mu.Unlock()

	if err := s.cache.Flush(ctx); err != nil {
		s.logger.Warn("Failed to flush query cache after catalog load", zap.Error(err))
	}

	s.logger.Info("Catalog loaded",
		zap.Int("courses", built.CourseCount()),
		zap.Int("programs", len(built.Programs())),
		zap.Int64("version", version),
	)

	event := events.NewCatalogLoaded(built.CourseCount(), len(built.Programs()))
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish catalog.loaded event", zap.Error(err))
	}

	return nil
}

// Catalog returns the current catalog. Panics if Load has never succeeded;
// initialization aborts before the server starts in that case.
func (s *CatalogService) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		panic("catalog accessed before initial load")
	}
	return s.current
}

// Version returns the monotonically increasing catalog version.
func (s *CatalogService) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
