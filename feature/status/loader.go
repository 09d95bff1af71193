package status

import (
	"booktracker/core/loader"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewFeature wires the status history routes.
func NewFeature(db *gorm.DB, logger *zap.Logger) *loader.RouteFeature {
	return loader.Routes("status", NewHandler(NewService(db, logger)).RegisterRoutes)
}
