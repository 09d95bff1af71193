package logger

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger from cfg.
//
// Level "debug" selects zap's development preset; any other level uses the
// production preset at that level. An unknown level is an error.
func New(cfg *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	case "", "json":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("log format %q: expected json or console", cfg.Format)
	}

	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.MessageKey = "message"

	return zc.Build()
}

// WithRayID tags l with the request's ray id, if the rayid middleware set one.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals("ray_id").(string); ok && rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}

// WithOwner tags l with the id of the user whose data is being touched.
func WithOwner(l *zap.Logger, ownerID uint) *zap.Logger {
	return l.With(zap.Uint("owner_id", ownerID))
}
