package models

import "time"

// Reading status codes.
const (
	StatusWantToRead = "want_to_read"
	StatusCurrent    = "current"
	StatusCompleted  = "completed"
	StatusPaused     = "paused"
	StatusDiscarded  = "discarded"
)

// StatusCodes lists every valid status code.
var StatusCodes = []string{
	StatusWantToRead,
	StatusCurrent,
	StatusCompleted,
	StatusPaused,
	StatusDiscarded,
}

// IsValidStatus checks if code is a known status code.
func IsValidStatus(code string) bool {
	switch code {
	case StatusWantToRead, StatusCurrent, StatusCompleted, StatusPaused, StatusDiscarded:
		return true
	default:
		return false
	}
}

// Ratings range from Unrated to 5.
const (
	Unrated   = 0
	MaxRating = 5
)

// IsValidRating checks if r is within the rating scale.
func IsValidRating(r int) bool {
	return r >= Unrated && r <= MaxRating
}

// StatusEvent is one entry of a book's append-only reading history.
type StatusEvent struct {
	ID         uint      `gorm:"primaryKey"`
	BookID     uint      `gorm:"index;not null"`
	UserID     uint      `gorm:"index;not null"`
	StatusCode string    `gorm:"size:32;not null"`
	Date       time.Time `gorm:"not null"`
}

// TableName overrides the table name.
func (StatusEvent) TableName() string {
	return "book_statuses"
}

// All returns every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Token{},
		&Series{},
		&Book{},
		&Author{},
		&Tag{},
		&StatusEvent{},
	}
}
