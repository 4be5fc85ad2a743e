package handlers

import (
	"context"
	"fmt"

	"coursemap-backend/application/queries"
	"coursemap-backend/application/queries/bus"
	"coursemap-backend/application/services"
)

// GetGraphDataHandler builds graph payloads for visualization.
type GetGraphDataHandler struct {
	graphs *services.GraphService
}

// NewGetGraphDataHandler creates the handler.
func NewGetGraphDataHandler(graphs *services.GraphService) *GetGraphDataHandler {
	return &GetGraphDataHandler{graphs: graphs}
}

// Handle implements bus.QueryHandler.
func (h *GetGraphDataHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetGraphDataQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}

	g, err := h.graphs.Build(ctx, q.Program)
	if err != nil {
		return nil, err
	}

	return queries.NewGraphDataResult(q.Program, g), nil
}
