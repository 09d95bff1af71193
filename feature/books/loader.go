package books

import (
	"booktracker/core/loader"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewFeature wires the books service to its routes.
func NewFeature(db *gorm.DB, logger *zap.Logger) *loader.RouteFeature {
	return loader.Routes("books", NewHandler(NewService(db, logger)).RegisterRoutes)
}
