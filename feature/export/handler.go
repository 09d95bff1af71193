package export

import (
	"booktracker/core/logger"
	"booktracker/core/middleware/auth"
	"booktracker/core/response"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for exports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/export")
	group.Post("/", h.HandleExport)
	group.Get("/", h.HandleList)
	group.Get("/:name", h.HandleDownload)
	group.Delete("/:name", h.HandleRemove)
}

// HandleExport writes a snapshot of the caller's library.
// @Summary Export Library
// @Tags export
// @Produce json
// @Security TokenAuth
// @Success 201 {object} map[string]export.Result
// @Failure 500 {object} map[string]string
// @Router /export [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	result, err := h.service.Export(c.UserContext(), auth.OwnerID(c))
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusCreated, "export", result)
}

// HandleList lists the caller's snapshots.
// @Summary List Exports
// @Tags export
// @Produce json
// @Security TokenAuth
// @Success 200 {object} map[string][]export.Object
// @Router /export [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	objects, err := h.service.List(c.UserContext(), auth.OwnerID(c))
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "exports", objects)
}

// HandleDownload streams one snapshot.
// @Summary Download Export
// @Tags export
// @Produce json
// @Security TokenAuth
// @Param name path string true "Snapshot file name"
// @Success 200 {object} export.Library
// @Failure 400 {object} map[string]string
// @Router /export/{name} [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	r, err := h.service.Open(c.UserContext(), auth.OwnerID(c), c.Params("name"))
	if err != nil {
		return response.Error(c, l, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	// fasthttp closes the stream once the body is written.
	return c.SendStream(r)
}

// HandleRemove deletes one snapshot.
// @Summary Remove Export
// @Tags export
// @Produce json
// @Security TokenAuth
// @Param name path string true "Snapshot file name"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /export/{name} [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")
	if err := h.service.Remove(c.UserContext(), auth.OwnerID(c), name); err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "export", name)
}
