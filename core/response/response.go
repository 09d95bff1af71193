// Package response writes the JSON envelopes shared by every handler.
package response

import (
	"bytes"
	"encoding/json"

	"booktracker/core/errs"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Error writes {"error": message} with the status mapped from err.
// Internal failures are logged with their cause; client errors at debug level.
func Error(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := errs.Status(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Request failed", zap.Error(err))
	} else {
		l.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": errs.Message(err)})
}

// Wrapped writes {key: payload} with the given status.
func Wrapped(c *fiber.Ctx, status int, key string, payload any) error {
	return c.Status(status).JSON(fiber.Map{key: payload})
}

// Decode unmarshals the JSON body into dst. An empty body leaves dst untouched
// so handlers can report missing fields with their own message.
func Decode(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errs.Invalid("Malformed request body", err)
	}
	return nil
}

// ParamID parses a positive integer route parameter.
func ParamID(c *fiber.Ctx, name, entity string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errs.Validation("Invalid %s ID: %s", entity, c.Params(name))
	}
	return uint(id), nil
}
