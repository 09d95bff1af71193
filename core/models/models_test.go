package models_test

import (
	"testing"

	"booktracker/core/models"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, code := range models.StatusCodes {
		assert.True(t, models.IsValidStatus(code), code)
	}
	assert.False(t, models.IsValidStatus("in progress"))
	assert.False(t, models.IsValidStatus(""))
}

func TestIsValidRating(t *testing.T) {
	tests := []struct {
		rating int
		want   bool
	}{
		{models.Unrated, true},
		{3, true},
		{models.MaxRating, true},
		{-1, false},
		{20, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, models.IsValidRating(tt.rating))
	}
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "books", models.Book{}.TableName())
	assert.Equal(t, "book_authors", models.Author{}.TableName())
	assert.Equal(t, "book_tags", models.Tag{}.TableName())
	assert.Equal(t, "book_statuses", models.StatusEvent{}.TableName())
	assert.Len(t, models.All(), 7)
}
