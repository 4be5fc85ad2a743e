package handlers

import (
	"net/http"

	"coursemap-backend/application/queries"
	querybus "coursemap-backend/application/queries/bus"
	"coursemap-backend/application/services"
	"coursemap-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GraphHandler serves the renderable dependency graph
type GraphHandler struct {
	queryBus *querybus.QueryBus
	catalogs *services.CatalogService
	logger   *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(queryBus *querybus.QueryBus, catalogs *services.CatalogService, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		queryBus: queryBus,
		catalogs: catalogs,
		logger:   logger,
	}
}

// GetProgramGraph handles GET /programs/{program}/graph
func (h *GraphHandler) GetProgramGraph(w http.ResponseWriter, r *http.Request) {
	program := chi.URLParam(r, "program")
	if program == "" {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.BadRequest, "Program name is required")
		return
	}

	h.serveGraph(w, r, program)
}

// GetFullGraph handles GET /graph, the combined graph of every program.
func (h *GraphHandler) GetFullGraph(w http.ResponseWriter, r *http.Request) {
	h.serveGraph(w, r, "")
}

func (h *GraphHandler) serveGraph(w http.ResponseWriter, r *http.Request, program string) {
	// The catalog version keys the query cache; results built from a
	// superseded catalog miss and get rebuilt.
	query := queries.GetGraphDataQuery{
		Program:        program,
		CatalogVersion: h.catalogs.Version(),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to build graph",
			zap.String("program", program),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
