package status

import (
	"booktracker/core/logger"
	"booktracker/core/middleware/auth"
	"booktracker/core/response"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for status history.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/status")
	group.Get("/:bookID", h.HandleHistory)
	group.Post("/:bookID", h.HandleCreateStatus)
	group.Delete("/:id", h.HandleDeleteStatus)
}

// HandleHistory lists the status history of a book.
// @Summary Status History
// @Tags status
// @Produce json
// @Security TokenAuth
// @Param bookID path int true "Book ID"
// @Success 200 {object} map[string][]status.View
// @Failure 400 {object} map[string]string
// @Router /status/{bookID} [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	bookID, err := response.ParamID(c, "bookID", "book")
	if err != nil {
		return response.Error(c, l, err)
	}
	views, err := h.service.History(c.UserContext(), bookID, auth.OwnerID(c))
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "status_history", views)
}

// HandleCreateStatus appends a status event.
// @Summary Add Status
// @Tags status
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param bookID path int true "Book ID"
// @Param status body status.CreateRequest true "Status"
// @Success 201 {object} map[string]status.View
// @Failure 400 {object} map[string]string
// @Router /status/{bookID} [post]
func (h *Handler) HandleCreateStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	bookID, err := response.ParamID(c, "bookID", "book")
	if err != nil {
		return response.Error(c, l, err)
	}
	var req CreateRequest
	if err := response.Decode(c, &req); err != nil {
		return response.Error(c, l, err)
	}
	view, err := h.service.CreateStatusEvent(c.UserContext(), bookID, auth.OwnerID(c), req)
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusCreated, "status", view)
}

// HandleDeleteStatus deletes a status event.
// @Summary Delete Status
// @Tags status
// @Produce json
// @Security TokenAuth
// @Param id path int true "Status ID"
// @Success 200 {object} map[string]status.DeleteResult
// @Failure 400 {object} map[string]string
// @Router /status/{id} [delete]
func (h *Handler) HandleDeleteStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id, err := response.ParamID(c, "id", "status")
	if err != nil {
		return response.Error(c, l, err)
	}
	result, err := h.service.DeleteStatusEvent(c.UserContext(), id, auth.OwnerID(c))
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "status", result)
}
