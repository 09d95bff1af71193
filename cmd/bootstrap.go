package cmd

import (
	"fmt"

	"booktracker/core/config"
	"booktracker/core/database"
	"booktracker/core/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bootstrap loads the configuration, builds the logger and connects to the database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	logg.Info("Connected to database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("name", cfg.Database.Name),
	)
	return cfg, logg, db, nil
}
