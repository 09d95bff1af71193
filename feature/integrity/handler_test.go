package integrity

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"booktracker/core/middleware/auth"
	"booktracker/core/storage"
	"booktracker/core/storage/mocks"
	"booktracker/core/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	db := testutil.NewDB(t)
	testutil.User(t, db, "alice")

	client := new(mocks.Client)
	cfg := storage.Config{Bucket: "booktracker", ExportPrefix: "exports"}

	app := fiber.New()
	app.Use(auth.New(auth.Config{DB: db, Schemes: []string{"Token"}}))
	require.NoError(t, NewFeature(client, cfg, zap.NewNop(), db).Load(app))
	return app, client
}

func get(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	req.Header.Set("Authorization", "Token token-alice")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleStorageCheck_Fix(t *testing.T) {
	app, client := setupTestApp(t)
	client.On("BucketExists", mock.Anything, "booktracker").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "booktracker", minio.MakeBucketOptions{}).Return(nil).Once()

	status, body := get(t, app, "/integrity/storage")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["exists"])
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)

	status, body = get(t, app, "/integrity/storage?fix=true")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "fixed", body["status"])
	client.AssertExpectations(t)
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, client := setupTestApp(t)
	client.On("BucketExists", mock.Anything, "booktracker").Return(true, nil)
	client.On("ListObjects", mock.Anything, "booktracker", mock.Anything).
		Return(func(context.Context, string, minio.ListObjectsOptions) <-chan minio.ObjectInfo {
			return mocks.Objects()
		})

	status, body := get(t, app, "/integrity")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["schema"].(map[string]any)["matched"])
	assert.Equal(t, true, body["storage"].(map[string]any)["exists"])
	assert.Empty(t, body["library"].(map[string]any)["stale_status"])

	status, body = get(t, app, "/integrity/library?fix=true")
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["orphan_tags"])
}
