package ports

import (
	"context"

	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/events"
	"coursemap-backend/domain/session"
)

// CatalogSource loads the raw course and program records the catalog is
// built from. This is a port in hexagonal architecture - the application
// layer doesn't know whether the data comes from JSON documents or a
// database. Load returns either a complete dataset or an error; there is no
// partial-data fallback.
type CatalogSource interface {
	Load(ctx context.Context) ([]*catalog.CourseRecord, []*catalog.ProgramRecord, error)
}

// SessionStore persists view sessions between interaction events.
type SessionStore interface {
	// Save persists a session (create or update)
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete removes a session
	Delete(ctx context.Context, id string) error
}

// EventBus publishes domain events to interested consumers.
type EventBus interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache provides lookaside caching for query results.
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Flush drops every cached value
	Flush(ctx context.Context) error
}
