package handlers

import (
	"context"
	"fmt"

	"coursemap-backend/application/queries"
	"coursemap-backend/application/queries/bus"
	"coursemap-backend/application/services"
	pkgerrors "coursemap-backend/pkg/errors"
)

// GetCourseHandler serves full course records for the detail sidebar.
type GetCourseHandler struct {
	catalogs *services.CatalogService
}

// NewGetCourseHandler creates the handler.
func NewGetCourseHandler(catalogs *services.CatalogService) *GetCourseHandler {
	return &GetCourseHandler{catalogs: catalogs}
}

// Handle implements bus.QueryHandler.
func (h *GetCourseHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetCourseQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}

	course, found := h.catalogs.Catalog().Lookup(q.Code)
	if !found {
		return nil, pkgerrors.NewNotFoundError("course")
	}

	return queries.GetCourseResult{Course: course}, nil
}
