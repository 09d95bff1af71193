// Package database handles database connections, migrations and schema inspection.
//
// It wraps GORM to configure MySQL (production) or SQLite (local use and tests)
// connections from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver and pings it. SQLite connections are pinned
// to a single connection so an in-memory database survives across queries.
//
// # Migrate
//
// Migrate runs AutoMigrate for every model in core/models.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns back the integrity feature, which verifies the
// live schema against the models before serving traffic.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	err = database.Migrate(ctx, db)
package database
