package books

import (
	"booktracker/core/logger"
	"booktracker/core/middleware/auth"
	"booktracker/core/response"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for books.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the book routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/books")
	group.Get("/", h.HandleListBooks)
	group.Post("/", h.HandleCreateBook)
	group.Get("/:id", h.HandleGetBook)
	group.Put("/:id", h.HandleUpdateBook)
	group.Delete("/:id", h.HandleDeleteBook)
	group.Put("/:id/rating", h.HandleRateBook)
}

// HandleListBooks lists the caller's books.
// @Summary List Books
// @Tags books
// @Produce json
// @Security TokenAuth
// @Success 200 {object} map[string][]books.View
// @Failure 401 {object} map[string]string
// @Router /books [get]
func (h *Handler) HandleListBooks(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	views, err := h.service.ListBooks(c.UserContext(), auth.OwnerID(c))
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "books", views)
}

// HandleGetBook returns one book.
// @Summary Get Book
// @Tags books
// @Produce json
// @Security TokenAuth
// @Param id path int true "Book ID"
// @Success 200 {object} map[string]books.View
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /books/{id} [get]
func (h *Handler) HandleGetBook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id, err := response.ParamID(c, "id", "book")
	if err != nil {
		return response.Error(c, l, err)
	}
	view, err := h.service.GetBook(c.UserContext(), id, auth.OwnerID(c))
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "book", view)
}

// HandleCreateBook creates a book.
// @Summary Create Book
// @Tags books
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param book body books.CreateRequest true "Book"
// @Success 201 {object} map[string][]books.View
// @Failure 400 {object} map[string]string
// @Router /books [post]
func (h *Handler) HandleCreateBook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	var req CreateRequest
	if err := response.Decode(c, &req); err != nil {
		return response.Error(c, l, err)
	}
	view, err := h.service.CreateBook(c.UserContext(), auth.OwnerID(c), req)
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusCreated, "books", []*View{view})
}

// HandleUpdateBook applies a partial update.
// @Summary Update Book
// @Description Partial update. Authors and tags are replaced by the submitted lists; null, -1 or "" clear series, position_in_series and page_count.
// @Tags books
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Book ID"
// @Param patch body object true "Fields to change"
// @Success 200 {object} map[string][]books.View
// @Failure 400 {object} map[string]string
// @Router /books/{id} [put]
func (h *Handler) HandleUpdateBook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id, err := response.ParamID(c, "id", "book")
	if err != nil {
		return response.Error(c, l, err)
	}
	var p Patch
	if err := response.Decode(c, &p); err != nil {
		return response.Error(c, l, err)
	}
	view, err := h.service.UpdateBook(c.UserContext(), id, auth.OwnerID(c), p)
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "books", []*View{view})
}

// HandleDeleteBook deletes a book and everything attached to it.
// @Summary Delete Book
// @Tags books
// @Produce json
// @Security TokenAuth
// @Param id path int true "Book ID"
// @Success 200 {object} map[string]books.View
// @Failure 400 {object} map[string]string
// @Router /books/{id} [delete]
func (h *Handler) HandleDeleteBook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id, err := response.ParamID(c, "id", "book")
	if err != nil {
		return response.Error(c, l, err)
	}
	view, err := h.service.DeleteBook(c.UserContext(), id, auth.OwnerID(c))
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "book", view)
}

type rateRequest struct {
	Rating *int `json:"rating"`
}

// HandleRateBook sets the rating of a book.
// @Summary Rate Book
// @Tags books
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Book ID"
// @Param rating body object true "{\"rating\": 0-5}"
// @Success 200 {object} map[string][]books.View
// @Failure 400 {object} map[string]string
// @Router /books/{id}/rating [put]
func (h *Handler) HandleRateBook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id, err := response.ParamID(c, "id", "book")
	if err != nil {
		return response.Error(c, l, err)
	}
	var req rateRequest
	if err := response.Decode(c, &req); err != nil {
		return response.Error(c, l, err)
	}
	view, err := h.service.RateBook(c.UserContext(), id, auth.OwnerID(c), req.Rating)
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "books", []*View{view})
}
