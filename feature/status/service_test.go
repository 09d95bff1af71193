package status

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"booktracker/core/errs"
	"booktracker/core/models"
	"booktracker/core/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func day(s string) time.Time {
	t, _ := time.Parse(DateLayout, s)
	return t
}

func TestLatest(t *testing.T) {
	tests := []struct {
		name   string
		events []models.StatusEvent
		want   uint
		ok     bool
	}{
		{"Empty", nil, 0, false},
		{"Single", []models.StatusEvent{{ID: 3, Date: day("2020-01-01")}}, 3, true},
		{"Max date wins", []models.StatusEvent{
			{ID: 1, Date: day("2012-01-01")},
			{ID: 2, Date: day("2011-01-01")},
		}, 1, true},
		{"Tie goes to highest id", []models.StatusEvent{
			{ID: 5, Date: day("2012-01-01")},
			{ID: 9, Date: day("2012-01-01")},
			{ID: 7, Date: day("2012-01-01")},
		}, 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Latest(tt.events)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestDeleteStatusEvent_Recalculates(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	u := testutil.User(t, db, "alice")
	book := testutil.Book(t, db, u.ID, "Book", []string{"A"}, nil)
	testutil.Status(t, db, book.ID, u.ID, models.StatusCurrent, "2011-01-01")
	discarded := testutil.Status(t, db, book.ID, u.ID, models.StatusDiscarded, "2012-01-01")
	d := day("2012-01-01")
	require.NoError(t, db.Model(&book).Updates(models.Book{CurrentStatus: models.StatusDiscarded, CurrentStatusDate: &d}).Error)

	result, err := svc.DeleteStatusEvent(ctx, discarded.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDiscarded, result.Deleted.StatusCode)
	assert.Equal(t, models.StatusCurrent, result.NewCurrentStatus)
	require.NotNil(t, result.NewCurrentStatusDate)
	assert.True(t, day("2011-01-01").Equal(*result.NewCurrentStatusDate))

	var reloaded models.Book
	require.NoError(t, db.First(&reloaded, book.ID).Error)
	assert.Equal(t, models.StatusCurrent, reloaded.CurrentStatus)
	require.NotNil(t, reloaded.CurrentStatusDate)
	assert.True(t, day("2011-01-01").Equal(*reloaded.CurrentStatusDate))
}

func TestDeleteStatusEvent_LastEventKeepsCache(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())

	u := testutil.User(t, db, "alice")
	book := testutil.Book(t, db, u.ID, "Book", []string{"A"}, nil)
	only := testutil.Status(t, db, book.ID, u.ID, models.StatusPaused, "2015-06-01")
	d := day("2015-06-01")
	require.NoError(t, db.Model(&book).Updates(models.Book{CurrentStatus: models.StatusPaused, CurrentStatusDate: &d}).Error)

	result, err := svc.DeleteStatusEvent(context.Background(), only.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaused, result.NewCurrentStatus)

	var count int64
	require.NoError(t, db.Model(&models.StatusEvent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteStatusEvent_OwnerScoped(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())

	alice := testutil.User(t, db, "alice")
	bob := testutil.User(t, db, "bob")
	book := testutil.Book(t, db, alice.ID, "Book", []string{"A"}, nil)
	event := testutil.Status(t, db, book.ID, alice.ID, models.StatusCurrent, "2020-01-01")

	_, err := svc.DeleteStatusEvent(context.Background(), event.ID, bob.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	assert.Equal(t, fmt.Sprintf("Could not find status with ID: %d", event.ID), errs.Message(err))
}

func TestCreateStatusEvent(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	u := testutil.User(t, db, "alice")
	book := testutil.Book(t, db, u.ID, "Book", []string{"A"}, nil)

	_, err := svc.CreateStatusEvent(ctx, book.ID, u.ID, CreateRequest{StatusCode: models.StatusCompleted, Date: "2020-05-01"})
	require.NoError(t, err)
	// Older event does not take over the current status.
	_, err = svc.CreateStatusEvent(ctx, book.ID, u.ID, CreateRequest{StatusCode: models.StatusCurrent, Date: "2020-01-01"})
	require.NoError(t, err)

	var reloaded models.Book
	require.NoError(t, db.First(&reloaded, book.ID).Error)
	assert.Equal(t, models.StatusCompleted, reloaded.CurrentStatus)

	history, err := svc.History(ctx, book.ID, u.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2020-05-01", history[0].Date)

	_, err = svc.CreateStatusEvent(ctx, book.ID, u.ID, CreateRequest{StatusCode: "reading", Date: "2020-01-01"})
	assert.Equal(t, "Invalid status code", errs.Message(err))

	_, err = svc.CreateStatusEvent(ctx, book.ID, u.ID, CreateRequest{StatusCode: models.StatusCurrent, Date: "May 1st"})
	assert.Equal(t, "Invalid status parameters", errs.Message(err))

	_, err = svc.CreateStatusEvent(ctx, 999, u.ID, CreateRequest{StatusCode: models.StatusCurrent, Date: "2020-01-01"})
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}
