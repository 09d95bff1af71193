package account

import (
	"booktracker/core/logger"
	"booktracker/core/response"

	"github.com/gofiber/fiber/v2"
)

// LoginPath is served without authentication.
const LoginPath = "/auth/login"

// Handler handles HTTP requests for accounts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the account routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post(LoginPath, h.HandleLogin)
}

// HandleLogin exchanges credentials for a token.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body account.LoginRequest true "Credentials"
// @Success 200 {object} account.Session
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	var req LoginRequest
	if err := response.Decode(c, &req); err != nil {
		return response.Error(c, l, err)
	}
	session, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return response.Error(c, l, err)
	}
	return c.JSON(session)
}
