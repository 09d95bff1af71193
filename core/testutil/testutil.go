// Package testutil provides database fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"booktracker/core/database"
	"booktracker/core/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewMockDB opens a GORM MySQL connection backed by sqlmock.
func NewMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db, mock
}

// User creates a user with a token equal to "token-<username>".
func User(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	u := models.User{
		Username:     username,
		PasswordHash: "x",
		HashID:       fmt.Sprintf("%032s", username),
	}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Create(&models.Token{Key: "token-" + username, UserID: u.ID}).Error)
	return u
}

// Book creates a book with the given authors and tags, inserted in order.
func Book(t *testing.T, db *gorm.DB, ownerID uint, title string, authors, tags []string) models.Book {
	t.Helper()
	b := models.Book{Title: title, UserID: ownerID}
	require.NoError(t, db.Create(&b).Error)
	for _, name := range authors {
		require.NoError(t, db.Create(&models.Author{AuthorName: name, BookID: b.ID, UserID: ownerID}).Error)
	}
	for _, name := range tags {
		require.NoError(t, db.Create(&models.Tag{TagName: name, BookID: b.ID, UserID: ownerID}).Error)
	}
	return b
}

// Series creates a series.
func Series(t *testing.T, db *gorm.DB, ownerID uint, name string, planned uint) models.Series {
	t.Helper()
	s := models.Series{Name: name, PlannedCount: planned, UserID: ownerID}
	require.NoError(t, db.Create(&s).Error)
	return s
}

// Status appends a status event dated at the given day.
func Status(t *testing.T, db *gorm.DB, bookID, ownerID uint, code, day string) models.StatusEvent {
	t.Helper()
	date, err := time.Parse(time.DateOnly, day)
	require.NoError(t, err)
	e := models.StatusEvent{BookID: bookID, UserID: ownerID, StatusCode: code, Date: date}
	require.NoError(t, db.Create(&e).Error)
	return e
}
