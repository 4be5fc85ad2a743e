package handlers

import (
	"context"
	"fmt"

	"coursemap-backend/application/queries"
	"coursemap-backend/application/queries/bus"
	"coursemap-backend/application/services"
)

// ListProgramsHandler serves the program listing.
type ListProgramsHandler struct {
	catalogs *services.CatalogService
}

// NewListProgramsHandler creates the handler.
func NewListProgramsHandler(catalogs *services.CatalogService) *ListProgramsHandler {
	return &ListProgramsHandler{catalogs: catalogs}
}

// Handle implements bus.QueryHandler.
func (h *ListProgramsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.ListProgramsQuery); !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}

	programs := h.catalogs.Catalog().Programs()
	summaries := make([]queries.ProgramSummary, 0, len(programs))
	for _, program := range programs {
		summaries = append(summaries, queries.ProgramSummary{
			Name:        program.Name,
			CourseCount: len(program.Courses),
		})
	}

	return queries.ListProgramsResult{Programs: summaries}, nil
}
