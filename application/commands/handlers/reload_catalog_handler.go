package handlers

import (
	"context"
	"fmt"

	"coursemap-backend/application/commands"
	"coursemap-backend/application/commands/bus"
	"coursemap-backend/application/services"

	"go.uber.org/zap"
)

// ReloadCatalogHandler handles catalog reload commands.
type ReloadCatalogHandler struct {
	catalogs *services.CatalogService
	logger   *zap.Logger
}

// NewReloadCatalogHandler creates the handler.
func NewReloadCatalogHandler(catalogs *services.CatalogService, logger *zap.Logger) *ReloadCatalogHandler {
	return &ReloadCatalogHandler{
		catalogs: catalogs,
		logger:   logger,
	}
}

// Handle implements bus.CommandHandler.
func (h *ReloadCatalogHandler) Handle(ctx context.Context, cmd bus.Command) error {
	reload, ok := cmd.(commands.ReloadCatalogCommand)
	if !ok {
		return fmt.Errorf("invalid command type %T", cmd)
	}

	h.logger.Info("Catalog reload requested",
		zap.String("requestedBy", reload.RequestedBy),
	)

	return h.catalogs.Load(ctx)
}
