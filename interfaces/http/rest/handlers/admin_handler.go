package handlers

import (
	"net/http"

	"coursemap-backend/application/commands"
	commandbus "coursemap-backend/application/commands/bus"
	"coursemap-backend/interfaces/http/rest/middleware"
	"coursemap-backend/pkg/common"

	"go.uber.org/zap"
)

// AdminHandler handles administrative operations
type AdminHandler struct {
	commandBus *commandbus.CommandBus
	logger     *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(commandBus *commandbus.CommandBus, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		commandBus: commandBus,
		logger:     logger,
	}
}

// ReloadCatalog handles POST /catalog/reload
func (h *AdminHandler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	requestedBy := "unknown"
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		requestedBy = claims.UserID
	}

	cmd := commands.ReloadCatalogCommand{RequestedBy: requestedBy}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Catalog reload failed",
			zap.String("requestedBy", requestedBy),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}
