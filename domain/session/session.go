// Package session ties one client's interaction state to the graph it was
// derived from.
package session

import (
	"time"

	"coursemap-backend/domain/graph"
	"coursemap-backend/domain/viewstate"
)

// Session is one client's view of the catalogue: the program being shown,
// the graph built for it, and the interaction state layered on top. The
// graph is replaced wholesale on a program change; the state moves through
// the viewstate reducer.
type Session struct {
	ID        string
	Program   string // empty means the full catalogue
	Graph     *graph.Graph
	State     viewstate.State
	CreatedAt time.Time
	UpdatedAt time.Time
}
