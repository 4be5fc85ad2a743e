package handlers

import (
	"context"
	"fmt"

	"coursemap-backend/application/queries"
	"coursemap-backend/application/queries/bus"
	"coursemap-backend/application/services"
)

// SearchCourseHandler resolves a code against the display set of a program
// view.
type SearchCourseHandler struct {
	graphs *services.GraphService
}

// NewSearchCourseHandler creates the handler.
func NewSearchCourseHandler(graphs *services.GraphService) *SearchCourseHandler {
	return &SearchCourseHandler{graphs: graphs}
}

// Handle implements bus.QueryHandler.
func (h *SearchCourseHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.SearchCourseQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}

	g, err := h.graphs.Build(ctx, q.Program)
	if err != nil {
		return nil, err
	}

	if g.HasNode(q.Code) {
		return queries.SearchCourseResult{Found: true, NodeID: q.Code}, nil
	}

	return queries.SearchCourseResult{
		Found:  false,
		Notice: fmt.Sprintf("%s is not part of the current view", q.Code),
	}, nil
}
