package tags

import (
	"net/url"

	"booktracker/core/errs"
	"booktracker/core/logger"
	"booktracker/core/middleware/auth"
	"booktracker/core/response"
	"booktracker/core/utils"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for tags.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the tag routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tags")
	group.Get("/", h.HandleListTags)
	group.Put("/:name", h.HandleRenameTag)
	group.Delete("/:name", h.HandleDeleteTag)
}

// RenameRequest is the payload of PUT /tags/:name. Book ids may be numbers or
// numeric strings.
type RenameRequest struct {
	NewName string `json:"new_name"`
	Books   []any  `json:"books"`
}

// HandleListTags lists tag names with their books.
// @Summary List Tags
// @Tags tags
// @Produce json
// @Security TokenAuth
// @Success 200 {object} map[string][]tags.Group
// @Router /tags [get]
func (h *Handler) HandleListTags(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	groups, err := h.service.ListTags(c.UserContext(), auth.OwnerID(c))
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "tags", groups)
}

// HandleRenameTag renames a tag and reassigns it to the given books.
// @Summary Rename Tag
// @Description Renames the tag on the listed books and removes it from all others. An empty list deletes the tag.
// @Tags tags
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param name path string true "Current tag name"
// @Param request body tags.RenameRequest true "New name and books"
// @Success 200 {object} map[string][]tags.RenameResult
// @Failure 400 {object} map[string]string
// @Router /tags/{name} [put]
func (h *Handler) HandleRenameTag(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name, err := tagParam(c)
	if err != nil {
		return response.Error(c, l, err)
	}

	var req RenameRequest
	if err := response.Decode(c, &req); err != nil {
		return response.Error(c, l, err)
	}
	if req.NewName == "" || req.Books == nil {
		return response.Error(c, l, errs.Validation("new name or list of books was not provided"))
	}

	ids := make([]uint, 0, len(req.Books))
	for _, raw := range req.Books {
		id, err := utils.ToUint(raw)
		if err != nil || id == 0 {
			return response.Error(c, l, errs.Validation("Invalid book ID: %v", raw))
		}
		ids = append(ids, id)
	}

	result, err := h.service.RenameTag(c.UserContext(), name, auth.OwnerID(c), req.NewName, ids)
	if err != nil {
		return response.Error(c, l, err)
	}
	if len(ids) == 0 {
		return response.Wrapped(c, fiber.StatusOK, "tags", result.Deleted)
	}
	return response.Wrapped(c, fiber.StatusOK, "tags", []*RenameResult{result})
}

// HandleDeleteTag deletes a tag from every book.
// @Summary Delete Tag
// @Tags tags
// @Produce json
// @Security TokenAuth
// @Param name path string true "Tag name"
// @Success 200 {object} map[string][]tags.Record
// @Failure 400 {object} map[string]string
// @Router /tags/{name} [delete]
func (h *Handler) HandleDeleteTag(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name, err := tagParam(c)
	if err != nil {
		return response.Error(c, l, err)
	}
	deleted, err := h.service.DeleteTag(c.UserContext(), name, auth.OwnerID(c))
	if err != nil {
		return response.Error(c, l, err)
	}
	return response.Wrapped(c, fiber.StatusOK, "tags", deleted)
}

func tagParam(c *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return "", errs.Validation("Invalid tag name: %s", c.Params("name"))
	}
	return name, nil
}
