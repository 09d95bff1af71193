package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"booktracker/core/database"
	"booktracker/core/loader"
	"booktracker/core/logger"
	"booktracker/core/middleware/auth"
	"booktracker/core/middleware/rayid"
	"booktracker/core/storage"
	"booktracker/feature/account"
	"booktracker/feature/books"
	"booktracker/feature/export"
	"booktracker/feature/integrity"
	"booktracker/feature/series"
	"booktracker/feature/status"
	"booktracker/feature/tags"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "booktracker/docs/swagger"
)

// @title Book Tracker API
// @version 1.0
// @description Personal library API: books, authors, series, tags and reading status history.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description "Token <key>"

var skipMigrate bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the book tracker server",
	Long:  `Migrates the database, starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !skipMigrate {
			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			logg.Info("Database migrated")
		}

		// Storage is optional: without it the export feature stays disabled.
		var store storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Storage unavailable, exports disabled", zap.Error(err))
		} else {
			store = client
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager(logg)
		mgr.Register(account.NewFeature(db, logg))
		mgr.Register(books.NewFeature(db, logg))
		mgr.Register(series.NewFeature(db, logg))
		mgr.Register(tags.NewFeature(db, logg))
		mgr.Register(status.NewFeature(db, logg))
		mgr.Register(export.NewFeature(db, store, cfg.Storage, logg))
		mgr.Register(integrity.NewFeature(store, cfg.Storage, logg, db))

		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (everything except login and docs)
		app.Use(auth.New(auth.Config{
			DB:      db,
			Schemes: cfg.Server.Schemes(),
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == account.LoginPath || strings.HasPrefix(c.Path(), "/swagger")
			},
		}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	startCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate the database on startup")
	RootCmd.AddCommand(startCmd)
}
