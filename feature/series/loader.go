package series

import (
	"booktracker/core/loader"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewFeature wires the series service to its routes.
func NewFeature(db *gorm.DB, logger *zap.Logger) *loader.RouteFeature {
	return loader.Routes("series", NewHandler(NewService(db, logger)).RegisterRoutes)
}
