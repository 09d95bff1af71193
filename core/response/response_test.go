package response_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"booktracker/core/errs"
	"booktracker/core/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"NotFound", errs.NotFound("Could not find book with ID: 3"), 400, `{"error":"Could not find book with ID: 3"}`},
		{"Unauthorized", errs.Unauthorized("unauthorized"), 401, `{"error":"unauthorized"}`},
		{"Internal", errors.New("db down"), 500, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return response.Error(c, zap.NewNop(), tt.err)
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.JSONEq(t, tt.wantBody, string(body))
		})
	}
}

func TestDecodeAndParamID(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	app := fiber.New()
	app.Post("/items/:id", func(c *fiber.Ctx) error {
		id, err := response.ParamID(c, "id", "item")
		if err != nil {
			return response.Error(c, zap.NewNop(), err)
		}
		var p payload
		if err := response.Decode(c, &p); err != nil {
			return response.Error(c, zap.NewNop(), err)
		}
		return c.JSON(fiber.Map{"id": id, "name": p.Name})
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/items/4", strings.NewReader(`{"name":"x"}`)))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"id":4,"name":"x"}`, string(body))

	resp, err = app.Test(httptest.NewRequest("POST", "/items/4", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/items/4", strings.NewReader(`{bad`)))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/items/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"Invalid item ID: abc"}`, string(body))
}
