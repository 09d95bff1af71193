package tags_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"booktracker/core/middleware/auth"
	"booktracker/core/testutil"
	"booktracker/feature/tags"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleRenameTag(t *testing.T) {
	db := testutil.NewDB(t)
	app := fiber.New()
	app.Use(auth.New(auth.Config{DB: db, Schemes: []string{"Token"}}))
	require.NoError(t, tags.NewFeature(db, zap.NewNop()).Load(app))

	u := testutil.User(t, db, "alice")
	b1 := testutil.Book(t, db, u.ID, "One", nil, []string{"science fiction"})
	b2 := testutil.Book(t, db, u.ID, "Two", nil, nil)

	send := func(body string) (int, map[string]any) {
		req := httptest.NewRequest(fiber.MethodPut, "/tags/science%20fiction", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Token token-alice")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return resp.StatusCode, out
	}

	status, body := send(`{"new_name": "scifi"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "new name or list of books was not provided", body["error"])

	status, body = send(fmt.Sprintf(`{"new_name": "scifi", "books": ["%d", %d]}`, b1.ID, b2.ID))
	require.Equal(t, fiber.StatusOK, status)
	renamed, ok := body["tags"].([]any)
	require.True(t, ok)
	require.Len(t, renamed, 1)
	result := renamed[0].(map[string]any)
	assert.Equal(t, "scifi", result["tag_name"])
	assert.Equal(t, []any{float64(b1.ID), float64(b2.ID)}, result["books"])

	status, body = send(`{"new_name": "scifi", "books": []}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "No tags match the name 'science fiction'", body["error"])
}
