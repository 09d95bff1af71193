package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"DebugConsole", Config{Level: "debug", Format: "console"}},
		{"InfoJSON", Config{Level: "info", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestWithRayIDAndOwner(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("ray_id", "ray-1")
		WithOwner(WithRayID(base, c), 7).Info("hello")
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	assert.NoError(t, err)

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ray-1", fields["ray_id"])
	assert.Equal(t, uint64(7), fields["owner_id"])
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(&Config{Level: "loud", Format: "json"})
	assert.Error(t, err)

	_, err = New(&Config{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
