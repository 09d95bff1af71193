package books

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"booktracker/core/errs"
	"booktracker/core/models"
	"booktracker/core/patch"
	"booktracker/core/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func authorIDs(t *testing.T, db *gorm.DB, bookID uint) map[string]uint {
	t.Helper()
	var rows []models.Author
	require.NoError(t, db.Where("book_id = ?", bookID).Find(&rows).Error)
	ids := make(map[string]uint, len(rows))
	for _, r := range rows {
		ids[r.AuthorName] = r.ID
	}
	return ids
}

func TestUpdateBook_Authors(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	u := testutil.User(t, db, "alice")
	book := testutil.Book(t, db, u.ID, "First Book", []string{"Jane Doe", "John Doe"}, nil)
	before := authorIDs(t, db, book.ID)

	p := Patch{Authors: patch.Set([]string{"Jane Doe", "New Author"})}
	view, err := svc.UpdateBook(ctx, book.ID, u.ID, p)
	require.NoError(t, err)

	after := authorIDs(t, db, book.ID)
	assert.Len(t, after, 2)
	assert.Equal(t, before["Jane Doe"], after["Jane Doe"], "kept author must keep its row")
	assert.NotContains(t, after, "John Doe")
	assert.Contains(t, after, "New Author")

	// Newest first
	assert.Equal(t, []string{"New Author", "Jane Doe"}, view.Authors)
	assert.Equal(t, "First Book", view.Title)
}

func TestUpdateBook_DuplicateTags(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())

	u := testutil.User(t, db, "alice")
	book := testutil.Book(t, db, u.ID, "Tagged", []string{"A"}, []string{"fantasy"})

	view, err := svc.UpdateBook(context.Background(), book.ID, u.ID, Patch{
		Tags: patch.Set([]string{"fantasy", "fantasy"}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fantasy"}, view.Tags)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Where("book_id = ?", book.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateBook_SecondUpdateIsNoop(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	u := testutil.User(t, db, "alice")
	book := testutil.Book(t, db, u.ID, "Book", []string{"X", "Y"}, []string{"a"})

	p := Patch{
		Authors: patch.Set([]string{"Y", "Z", "Z"}),
		Tags:    patch.Set([]string{"b", "a"}),
	}
	_, err := svc.UpdateBook(ctx, book.ID, u.ID, p)
	require.NoError(t, err)
	first := authorIDs(t, db, book.ID)

	_, err = svc.UpdateBook(ctx, book.ID, u.ID, p)
	require.NoError(t, err)
	assert.Equal(t, first, authorIDs(t, db, book.ID))
}

func TestUpdateBook_ClearSeries(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	u := testutil.User(t, db, "alice")
	series := testutil.Series(t, db, u.ID, "Saga", 3)

	t.Run("Sentinel clears series and position", func(t *testing.T) {
		book := testutil.Book(t, db, u.ID, "In Series", []string{"A"}, nil)
		pos := uint(2)
		require.NoError(t, db.Model(&book).Updates(models.Book{SeriesID: &series.ID, PositionInSeries: &pos}).Error)

		var p Patch
		require.NoError(t, json.Unmarshal([]byte(`{"series": -1}`), &p))

		view, err := svc.UpdateBook(ctx, book.ID, u.ID, p)
		require.NoError(t, err)
		assert.Nil(t, view.Series)
		assert.Nil(t, view.PositionInSeries)
	})

	t.Run("Explicit position survives clear", func(t *testing.T) {
		book := testutil.Book(t, db, u.ID, "In Series", []string{"A"}, nil)
		require.NoError(t, db.Model(&book).Update("series_id", series.ID).Error)

		view, err := svc.UpdateBook(ctx, book.ID, u.ID, Patch{
			Series:           patch.ClearUint(),
			PositionInSeries: patch.SetUint(4),
		})
		require.NoError(t, err)
		assert.Nil(t, view.Series)
		require.NotNil(t, view.PositionInSeries)
		assert.Equal(t, uint(4), *view.PositionInSeries)
	})

	t.Run("Absent fields are unchanged", func(t *testing.T) {
		book := testutil.Book(t, db, u.ID, "In Series", []string{"A"}, nil)
		desc := "kept"
		require.NoError(t, db.Model(&book).Updates(models.Book{SeriesID: &series.ID, Description: &desc}).Error)

		var p Patch
		require.NoError(t, json.Unmarshal([]byte(`{"title": "Renamed"}`), &p))

		view, err := svc.UpdateBook(ctx, book.ID, u.ID, p)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", view.Title)
		require.NotNil(t, view.Series)
		assert.Equal(t, series.ID, *view.Series)
		require.NotNil(t, view.Description)
		assert.Equal(t, "kept", *view.Description)
		assert.Equal(t, []string{"A"}, view.Authors)
	})
}

func TestUpdateBook_Errors(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	alice := testutil.User(t, db, "alice")
	bob := testutil.User(t, db, "bob")
	book := testutil.Book(t, db, alice.ID, "Mine", []string{"A"}, nil)
	bobSeries := testutil.Series(t, db, bob.ID, "Bob's", 1)

	t.Run("Missing book", func(t *testing.T) {
		_, err := svc.UpdateBook(ctx, 999, alice.ID, Patch{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrNotFound))
		assert.Equal(t, "Could not find book with ID: 999", errs.Message(err))
	})

	t.Run("Foreign book", func(t *testing.T) {
		_, err := svc.UpdateBook(ctx, book.ID, bob.ID, Patch{Title: patch.Set("stolen")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrNotFound))
	})

	t.Run("Unknown series writes nothing", func(t *testing.T) {
		before := authorIDs(t, db, book.ID)
		_, err := svc.UpdateBook(ctx, book.ID, alice.ID, Patch{
			Authors: patch.Set([]string{"B"}),
			Series:  patch.SetUint(bobSeries.ID),
		})
		require.Error(t, err)
		assert.Equal(t, "Could not find series with ID: "+itoa(bobSeries.ID), errs.Message(err))
		assert.True(t, errors.Is(err, errs.ErrNotFound))
		assert.Equal(t, before, authorIDs(t, db, book.ID))
	})

	t.Run("Empty title", func(t *testing.T) {
		_, err := svc.UpdateBook(ctx, book.ID, alice.ID, Patch{Title: patch.Set("")})
		assert.True(t, errors.Is(err, errs.ErrValidation))
	})
}

func TestUpdateBook_RollbackOnInsertFailure(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewService(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `books`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id"}).AddRow(1, "First Book", 7))
	mock.ExpectQuery("SELECT \\* FROM `book_authors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_name", "book_id", "user_id"}).
			AddRow(10, "Jane Doe", 1, 7).
			AddRow(11, "John Doe", 1, 7))
	mock.ExpectExec("DELETE FROM `book_authors`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `book_authors`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.UpdateBook(context.Background(), 1, 7, Patch{
		Authors: patch.Set([]string{"Jane Doe", "New Author"}),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAndGetBook(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	alice := testutil.User(t, db, "alice")
	bob := testutil.User(t, db, "bob")

	view, err := svc.CreateBook(ctx, alice.ID, CreateRequest{
		Title:   "Dune",
		Authors: []string{"Frank Herbert", "Frank Herbert"},
		Tags:    []string{"scifi", "classic", "scifi"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Frank Herbert"}, view.Authors)
	assert.Equal(t, []string{"classic", "scifi"}, view.Tags)
	assert.Equal(t, models.Unrated, view.Rating)

	got, err := svc.GetBook(ctx, view.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, view, got)

	_, err = svc.GetBook(ctx, view.ID, bob.ID)
	assert.True(t, errors.Is(err, errs.ErrUnauthorized))
	assert.Equal(t, "unauthorized", errs.Message(err))

	_, err = svc.GetBook(ctx, 404, alice.ID)
	assert.Equal(t, "No book found with the ID: 404", errs.Message(err))

	_, err = svc.CreateBook(ctx, alice.ID, CreateRequest{Title: "No authors"})
	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.Equal(t, "Invalid book parameters", errs.Message(err))

	list, err := svc.ListBooks(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteBook(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	alice := testutil.User(t, db, "alice")
	bob := testutil.User(t, db, "bob")
	book := testutil.Book(t, db, alice.ID, "Doomed", []string{"A"}, []string{"t"})
	testutil.Status(t, db, book.ID, alice.ID, models.StatusCurrent, "2020-01-01")

	_, err := svc.DeleteBook(ctx, book.ID, bob.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrOwnershipViolation))
	assert.Equal(t, "Users can only delete their own books; book "+itoa(book.ID)+" belongs to user "+itoa(alice.ID), errs.Message(err))

	view, err := svc.DeleteBook(ctx, book.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doomed", view.Title)

	for _, m := range []any{&models.Book{}, &models.Author{}, &models.Tag{}, &models.StatusEvent{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestRateBook(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	alice := testutil.User(t, db, "alice")
	bob := testutil.User(t, db, "bob")
	book := testutil.Book(t, db, alice.ID, "Rated", []string{"A"}, nil)

	rating := func(n int) *int { return &n }

	view, err := svc.RateBook(ctx, book.ID, alice.ID, rating(4))
	require.NoError(t, err)
	assert.Equal(t, 4, view.Rating)

	_, err = svc.RateBook(ctx, book.ID, alice.ID, nil)
	assert.Equal(t, "New Rating Not Provided", errs.Message(err))

	_, err = svc.RateBook(ctx, book.ID, alice.ID, rating(6))
	assert.Equal(t, "6 is not a valid rating", errs.Message(err))

	_, err = svc.RateBook(ctx, book.ID, bob.ID, rating(1))
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}
