package tags

import (
	"booktracker/core/loader"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewFeature registers the tag listing, rename and delete routes.
func NewFeature(db *gorm.DB, logger *zap.Logger) *loader.RouteFeature {
	return loader.Routes("tags", NewHandler(NewService(db, logger)).RegisterRoutes)
}
