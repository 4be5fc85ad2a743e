package events

import "time"

// SourceBackend is the event source name used on the bus.
const SourceBackend = "coursemap.backend"

// DomainEvent is the base interface for everything published to the event
// bus.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides the common event fields.
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// CatalogLoaded is raised after a catalog load or reload completes.
type CatalogLoaded struct {
	BaseEvent
	CourseCount  int `json:"course_count"`
	ProgramCount int `json:"program_count"`
}

// NewCatalogLoaded creates a CatalogLoaded event.
func NewCatalogLoaded(courseCount, programCount int) CatalogLoaded {
	return CatalogLoaded{
		BaseEvent: BaseEvent{
			AggregateID: "catalog",
			EventType:   "catalog.loaded",
			Timestamp:   time.Now(),
		},
		CourseCount:  courseCount,
		ProgramCount: programCount,
	}
}

// GraphRebuilt is raised after a display graph is rebuilt for a program (or
// for the full catalogue when Program is empty).
type GraphRebuilt struct {
	BaseEvent
	Program   string `json:"program"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

// NewGraphRebuilt creates a GraphRebuilt event.
func NewGraphRebuilt(program string, nodeCount, edgeCount int) GraphRebuilt {
	aggregate := program
	if aggregate == "" {
		aggregate = "catalog"
	}
	return GraphRebuilt{
		BaseEvent: BaseEvent{
			AggregateID: aggregate,
			EventType:   "graph.rebuilt",
			Timestamp:   time.Now(),
		},
		Program:   program,
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}
}
