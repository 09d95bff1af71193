package export

import (
	"booktracker/core/loader"
	"booktracker/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewFeature wires the export routes. The feature is disabled when client is nil.
func NewFeature(db *gorm.DB, client storage.Client, cfg storage.Config, logger *zap.Logger) *loader.RouteFeature {
	h := NewHandler(NewService(db, client, cfg, logger))
	return loader.Routes("export", h.RegisterRoutes).EnabledIf(client != nil)
}
