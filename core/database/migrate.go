package database

import (
	"context"
	"fmt"

	"booktracker/core/models"

	"gorm.io/gorm"
)

// Migrate creates or updates every booktracker table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
