package integrity

import (
	"booktracker/core/logger"
	"booktracker/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/library", h.HandleLibraryCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the schema, storage and library checks without fixing anything.
// @Tags integrity
// @Produce json
// @Security TokenAuth
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.UserContext()
	report := make(map[string]interface{})

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if store, err := h.service.CheckStorage(ctx); err != nil {
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = store
	}

	if library, err := h.service.CheckLibrary(ctx, auth.OwnerID(c)); err != nil {
		report["library"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["library"] = library
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks and optionally migrates the schema.
// @Summary Check Schema
// @Description Checks that every table and column of the data model exists. Optionally migrates.
// @Tags integrity
// @Produce json
// @Security TokenAuth
// @Param fix query boolean false "Migrate the database"
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Matched && fix {
		l.Info("Attempting to migrate schema")
		if err := h.service.FixSchema(c.UserContext()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to migrate schema",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "report": report})
	}

	return c.JSON(report)
}

// HandleStorageCheck checks and optionally creates the export bucket.
// @Summary Check Storage
// @Description Checks that the export bucket exists. Optionally creates it.
// @Tags integrity
// @Produce json
// @Security TokenAuth
// @Param fix query boolean false "Create the bucket"
// @Success 200 {object} checks.StorageReport "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckStorage(c.UserContext())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Exists && fix {
		l.Info("Attempting to create bucket", zap.String("bucket", report.Bucket))
		if err := h.service.FixStorage(c.UserContext()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create bucket",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "bucket": report.Bucket})
	}

	return c.JSON(report)
}

// HandleLibraryCheck checks and optionally repairs the caller's library.
// @Summary Check Library
// @Description Finds orphaned rows, books pointing at deleted series and stale current statuses. Optionally repairs them.
// @Tags integrity
// @Produce json
// @Security TokenAuth
// @Param fix query boolean false "Repair findings"
// @Success 200 {object} checks.LibraryReport "Library Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/library [get]
func (h *Handler) HandleLibraryCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"
	ownerID := auth.OwnerID(c)

	report, err := h.service.CheckLibrary(c.UserContext(), ownerID)
	if err != nil {
		l.Error("Library check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Clean() && fix {
		l.Info("Attempting to repair library", zap.Uint("owner_id", ownerID))
		if err := h.service.FixLibrary(c.UserContext(), ownerID, report); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to repair library",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "fixed": report})
	}

	return c.JSON(report)
}
