package integrity

import (
	"booktracker/core/loader"
	"booktracker/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewFeature wires the integrity routes. A nil client leaves the schema and
// library checks working and fails the storage checks.
func NewFeature(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB) *loader.RouteFeature {
	return loader.Routes("integrity", NewHandler(NewService(client, cfg, logger, db)).RegisterRoutes)
}
