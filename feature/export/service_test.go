package export

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"booktracker/core/errs"
	"booktracker/core/models"
	"booktracker/core/storage"
	"booktracker/core/storage/mocks"
	"booktracker/core/testutil"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testCfg = storage.Config{Bucket: "booktracker", ExportPrefix: "exports"}

func TestExport_WritesSnapshot(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.User(t, db, "alice")
	bob := testutil.User(t, db, "bob")
	testutil.Series(t, db, alice.ID, "Saga", 3)
	book := testutil.Book(t, db, alice.ID, "Dune", []string{"Frank Herbert"}, []string{"scifi"})
	testutil.Status(t, db, book.ID, alice.ID, models.StatusCompleted, "2021-03-04")
	testutil.Book(t, db, bob.ID, "Not mine", []string{"X"}, nil)

	client := new(mocks.Client)
	var uploaded []byte
	client.On("PutObject", mock.Anything, "booktracker", mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "exports/1/") && strings.HasSuffix(name, ".json")
	}), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil).Once()

	svc := NewService(db, client, testCfg, zap.NewNop())
	result, err := svc.Export(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Books)
	assert.Equal(t, 1, result.Series)
	assert.Equal(t, int64(len(uploaded)), result.Size)

	var lib Library
	require.NoError(t, json.Unmarshal(uploaded, &lib))
	require.Len(t, lib.Books, 1)
	assert.Equal(t, "Dune", lib.Books[0].Title)
	assert.Equal(t, []string{"Frank Herbert"}, lib.Books[0].Authors)
	assert.Equal(t, []string{"scifi"}, lib.Books[0].Tags)
	require.Len(t, lib.Books[0].History, 1)
	assert.Equal(t, models.StatusCompleted, lib.Books[0].History[0].StatusCode)
	client.AssertExpectations(t)
}

func TestExport_ConcurrentCallsShareUpload(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.User(t, db, "alice")

	entered := make(chan struct{})
	release := make(chan struct{})
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "booktracker", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(minio.UploadInfo{}, nil).Once()

	svc := NewService(db, client, testCfg, zap.NewNop())

	var wg sync.WaitGroup
	results := make([]*Result, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = svc.Export(context.Background(), u.ID)
	}()
	<-entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _ = svc.Export(context.Background(), u.ID)
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NotNil(t, results[0])
	assert.Same(t, results[0], results[1])
	client.AssertExpectations(t)
}

func TestExport_CancelledCallerDoesNotAbortSharedUpload(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.User(t, db, "alice")

	entered := make(chan struct{})
	release := make(chan struct{})
	var uploadErr error
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "booktracker", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(entered)
			<-release
			uploadErr = args.Get(0).(context.Context).Err()
		}).
		Return(minio.UploadInfo{}, nil).Once()

	svc := NewService(db, client, testCfg, zap.NewNop())

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Export(first, u.ID)
		firstErr <- err
	}()
	<-entered

	second := make(chan *Result, 1)
	go func() {
		res, err := svc.Export(context.Background(), u.ID)
		assert.NoError(t, err)
		second <- res
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	res := <-second
	require.NotNil(t, res)
	assert.NoError(t, uploadErr)
	client.AssertExpectations(t)
}

func TestListOpenRemove(t *testing.T) {
	db := testutil.NewDB(t)
	const name = "0f8fad5b-d9cb-469f-a165-70867728950e.json"

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "booktracker", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == "exports/7/"
	})).Return(func(context.Context, string, minio.ListObjectsOptions) <-chan minio.ObjectInfo {
		return mocks.Objects(minio.ObjectInfo{Key: "exports/7/" + name, Size: 12})
	})
	client.On("GetObject", mock.Anything, "booktracker", "exports/7/"+name, mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"owner":7}`)), nil)
	client.On("RemoveObject", mock.Anything, "booktracker", "exports/7/"+name, mock.Anything).Return(nil)

	svc := NewService(db, client, testCfg, zap.NewNop())
	ctx := context.Background()

	objects, err := svc.List(ctx, 7)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, name, objects[0].Name)

	r, err := svc.Open(ctx, 7, name)
	require.NoError(t, err)
	body, _ := io.ReadAll(r)
	assert.Equal(t, `{"owner":7}`, string(body))

	require.NoError(t, svc.Remove(ctx, 7, name))

	err = svc.Remove(ctx, 7, "../../etc/passwd")
	assert.Equal(t, "Invalid export name: ../../etc/passwd", errs.Message(err))

	_, err = svc.Open(ctx, 7, "1b4e28ba-2fa1-11d2-883f-0016d3cca427.json")
	assert.Equal(t, "Could not find export 1b4e28ba-2fa1-11d2-883f-0016d3cca427.json", errs.Message(err))
}
