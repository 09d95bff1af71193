package account

import (
	"booktracker/core/loader"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewFeature wires login and the account routes.
func NewFeature(db *gorm.DB, logger *zap.Logger) *loader.RouteFeature {
	return loader.Routes("account", NewHandler(NewService(db, logger)).RegisterRoutes)
}
