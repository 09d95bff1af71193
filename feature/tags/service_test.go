package tags

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"booktracker/core/errs"
	"booktracker/core/models"
	"booktracker/core/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func tagRows(t *testing.T, db *gorm.DB, ownerID uint) []models.Tag {
	t.Helper()
	var rows []models.Tag
	require.NoError(t, db.Where("user_id = ?", ownerID).Order("id").Find(&rows).Error)
	return rows
}

func rowFor(rows []models.Tag, bookID uint, name string) *models.Tag {
	for i := range rows {
		if rows[i].BookID == bookID && rows[i].TagName == name {
			return &rows[i]
		}
	}
	return nil
}

func TestRenameTag_Reassign(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())

	u := testutil.User(t, db, "alice")
	b1 := testutil.Book(t, db, u.ID, "One", []string{"A"}, []string{"fiction"})
	b2 := testutil.Book(t, db, u.ID, "Two", []string{"A"}, []string{"fiction"})
	b3 := testutil.Book(t, db, u.ID, "Three", []string{"A"}, nil)
	before := rowFor(tagRows(t, db, u.ID), b2.ID, "fiction")
	require.NotNil(t, before)

	result, err := svc.RenameTag(context.Background(), "fiction", u.ID, "fantasy", []uint{b2.ID, b3.ID})
	require.NoError(t, err)
	assert.Equal(t, "fantasy", result.TagName)
	assert.Equal(t, []uint{b2.ID, b3.ID}, result.Books)

	rows := tagRows(t, db, u.ID)
	require.Len(t, rows, 2)
	assert.Nil(t, rowFor(rows, b1.ID, "fiction"))
	assert.Nil(t, rowFor(rows, b1.ID, "fantasy"))

	renamed := rowFor(rows, b2.ID, "fantasy")
	require.NotNil(t, renamed)
	assert.Equal(t, before.ID, renamed.ID, "row must be renamed in place")
	assert.NotNil(t, rowFor(rows, b3.ID, "fantasy"))
}

func TestRenameTag_EmptyListDeletes(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	u := testutil.User(t, db, "alice")
	other := testutil.User(t, db, "bob")
	b1 := testutil.Book(t, db, u.ID, "One", nil, []string{"fiction", "keep"})
	b2 := testutil.Book(t, db, u.ID, "Two", nil, []string{"fiction"})
	testutil.Book(t, db, other.ID, "Bob's", nil, []string{"fiction"})

	result, err := svc.RenameTag(ctx, "fiction", u.ID, "ignored", []uint{})
	require.NoError(t, err)
	require.Len(t, result.Deleted, 2)
	assert.Equal(t, b1.ID, result.Deleted[0].Book)
	assert.Equal(t, b2.ID, result.Deleted[1].Book)

	_, err = svc.RenameTag(ctx, "fiction", u.ID, "ignored", []uint{})
	assert.Equal(t, "No tags match the name 'fiction'", errs.Message(err))

	assert.Len(t, tagRows(t, db, u.ID), 1)
	assert.Len(t, tagRows(t, db, other.ID), 1, "other owners keep their tags")
}

func TestRenameTag_Errors(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	alice := testutil.User(t, db, "alice")
	bob := testutil.User(t, db, "bob")
	mine := testutil.Book(t, db, alice.ID, "Mine", nil, []string{"fiction"})
	theirs := testutil.Book(t, db, bob.ID, "Theirs", nil, nil)

	_, err := svc.RenameTag(ctx, "missing", alice.ID, "x", []uint{mine.ID})
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	_, err = svc.RenameTag(ctx, "fiction", alice.ID, "fantasy", []uint{mine.ID, theirs.ID})
	require.Error(t, err)
	assert.Equal(t, fmt.Sprintf("Could not find book with ID: %d", theirs.ID), errs.Message(err))

	_, err = svc.RenameTag(ctx, "fiction", alice.ID, "fantasy", []uint{9999})
	assert.Equal(t, "Could not find book with ID: 9999", errs.Message(err))

	rows := tagRows(t, db, alice.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, "fiction", rows[0].TagName, "failed rename must not write")
	assert.Empty(t, tagRows(t, db, bob.ID))
}

func TestRenameTag_NoDuplicates(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())

	u := testutil.User(t, db, "alice")
	both := testutil.Book(t, db, u.ID, "Both", nil, []string{"fiction", "fantasy"})
	onlyNew := testutil.Book(t, db, u.ID, "Only new", nil, []string{"fantasy"})

	result, err := svc.RenameTag(context.Background(), "fiction", u.ID, "fantasy",
		[]uint{both.ID, onlyNew.ID, both.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{both.ID, onlyNew.ID}, result.Books)

	rows := tagRows(t, db, u.ID)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "fantasy", r.TagName)
	}
}

func TestListAndDeleteTags(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	u := testutil.User(t, db, "alice")
	b1 := testutil.Book(t, db, u.ID, "One", nil, []string{"scifi", "classic"})
	b2 := testutil.Book(t, db, u.ID, "Two", nil, []string{"scifi"})

	groups, err := svc.ListTags(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []Group{
		{TagName: "classic", Books: []uint{b1.ID}},
		{TagName: "scifi", Books: []uint{b1.ID, b2.ID}},
	}, groups)

	deleted, err := svc.DeleteTag(ctx, "scifi", u.ID)
	require.NoError(t, err)
	assert.Len(t, deleted, 2)

	_, err = svc.DeleteTag(ctx, "scifi", u.ID)
	assert.Equal(t, "Could not find any tags matching the name 'scifi'", errs.Message(err))

	groups, err = svc.ListTags(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}
