package status_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"booktracker/core/middleware/auth"
	"booktracker/core/models"
	"booktracker/core/testutil"
	"booktracker/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleStatusEnvelopes(t *testing.T) {
	db := testutil.NewDB(t)
	app := fiber.New()
	app.Use(auth.New(auth.Config{DB: db, Schemes: []string{"Token"}}))
	require.NoError(t, status.NewFeature(db, zap.NewNop()).Load(app))

	u := testutil.User(t, db, "alice")
	book := testutil.Book(t, db, u.ID, "Book", []string{"A"}, nil)
	testutil.Status(t, db, book.ID, u.ID, models.StatusCurrent, "2011-01-01")

	send := func(method, path, body string) (int, map[string]any) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Token token-alice")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return resp.StatusCode, out
	}
	path := fmt.Sprintf("/status/%d", book.ID)

	code, body := send(fiber.MethodPost, path, `{"status_code": "completed", "date": "2012-01-01"}`)
	require.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "completed", body["status"].(map[string]any)["status_code"])

	code, body = send(fiber.MethodGet, path, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.NotContains(t, body, "status")
	history := body["status_history"].([]any)
	require.Len(t, history, 2)
	assert.Equal(t, "completed", history[0].(map[string]any)["status_code"])
	assert.Equal(t, "2012-01-01", history[0].(map[string]any)["date"])
}
