package series

import (
	"booktracker/core/logger"
	"booktracker/core/middleware/auth"
	"booktracker/core/response"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for series.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the series routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/series")
	group.Get("/", h.HandleListSeries)
	group.Post("/", h.HandleCreateSeries)
	group.Put("/:id", h.HandleUpdateSeries)
	group.Delete("/:id", h.HandleDeleteSeries)
}

// HandleListSeries lists the caller's series.
// @Summary List Series
// @Tags series
// @Produce json
// @Security TokenAuth
// @Success 200 {object} map[string][]series.View
// @Router /series [get]
func (h *Handler) HandleListSeries(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	views, err := h.service.ListSeries(c.UserContext(), auth.OwnerID(c))
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "series", views)
}

// HandleCreateSeries creates a series.
// @Summary Create Series
// @Tags series
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param series body series.CreateRequest true "Series"
// @Success 201 {object} map[string][]series.View
// @Failure 400 {object} map[string]string
// @Router /series [post]
func (h *Handler) HandleCreateSeries(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	var req CreateRequest
	if err := response.Decode(c, &req); err != nil {
		return response.Error(c, l, err)
	}
	view, err := h.service.CreateSeries(c.UserContext(), auth.OwnerID(c), req)
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusCreated, "series", []*View{view})
}

// HandleUpdateSeries updates a series.
// @Summary Update Series
// @Tags series
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Series ID"
// @Param patch body object true "Fields to change"
// @Success 200 {object} map[string][]series.View
// @Failure 400 {object} map[string]string
// @Router /series/{id} [put]
func (h *Handler) HandleUpdateSeries(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id, err := response.ParamID(c, "id", "series")
	if err != nil {
		return response.Error(c, l, err)
	}
	var p Patch
	if err := response.Decode(c, &p); err != nil {
		return response.Error(c, l, err)
	}
	view, err := h.service.UpdateSeries(c.UserContext(), id, auth.OwnerID(c), p)
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "series", []*View{view})
}

// HandleDeleteSeries deletes a series.
// @Summary Delete Series
// @Tags series
// @Produce json
// @Security TokenAuth
// @Param id path int true "Series ID"
// @Success 200 {object} map[string]series.View
// @Failure 400 {object} map[string]string
// @Router /series/{id} [delete]
func (h *Handler) HandleDeleteSeries(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id, err := response.ParamID(c, "id", "series")
	if err != nil {
		return response.Error(c, l, err)
	}
	view, err := h.service.DeleteSeries(c.UserContext(), id, auth.OwnerID(c))
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "series", view)
}
