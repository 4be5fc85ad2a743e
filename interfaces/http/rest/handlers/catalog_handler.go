package handlers

import (
	"net/http"

	"coursemap-backend/application/queries"
	querybus "coursemap-backend/application/queries/bus"
	"coursemap-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler handles catalogue lookup requests
type CatalogHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// ListPrograms handles GET /programs
func (h *CatalogHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListProgramsQuery{})
	if err != nil {
		h.logger.Error("Failed to list programs", zap.Error(err))
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetCourse handles GET /courses/{code}
func (h *CatalogHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.BadRequest, "Course code is required")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetCourseQuery{Code: code})
	if err != nil {
		h.logger.Warn("Failed to get course",
			zap.String("code", code),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// Search handles GET /search
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.BadRequest, "Query parameter code is required")
		return
	}

	query := queries.SearchCourseQuery{
		Code:    code,
		Program: r.URL.Query().Get("program"),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Search failed",
			zap.String("code", code),
			zap.String("program", query.Program),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
