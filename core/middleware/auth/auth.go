package auth

import (
	"errors"
	"strings"

	"booktracker/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LocalsOwnerID is the fiber Locals key holding the authenticated user id.
const LocalsOwnerID = "owner_id"

// Config configures the token authentication middleware.
type Config struct {
	// DB resolves token keys to users.
	DB *gorm.DB
	// Schemes are the accepted Authorization schemes, e.g. "Token".
	Schemes []string
	// Next skips the middleware when it returns true.
	Next func(c *fiber.Ctx) bool
}

// New returns a middleware resolving "Authorization: <scheme> <key>" to a user id.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		key, ok := parseHeader(c.Get(fiber.HeaderAuthorization), cfg.Schemes)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication credentials were not provided.",
			})
		}

		var token models.Token
		err := cfg.DB.WithContext(c.UserContext()).Where(&models.Token{Key: key}).First(&token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token.",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		c.Locals(LocalsOwnerID, token.UserID)
		return c.Next()
	}
}

// OwnerID returns the authenticated user id, or 0 outside the middleware.
func OwnerID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(LocalsOwnerID).(uint); ok {
		return id
	}
	return 0
}

func parseHeader(header string, schemes []string) (string, bool) {
	scheme, key, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	for _, s := range schemes {
		if strings.EqualFold(scheme, s) {
			return key, true
		}
	}
	return "", false
}
