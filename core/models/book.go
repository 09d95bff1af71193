package models

import "time"

// Book is a tracked book. CurrentStatus and CurrentStatusDate cache the latest
// surviving StatusEvent.
type Book struct {
	ID                uint       `gorm:"primaryKey"`
	Title             string     `gorm:"size:255;not null"`
	UserID            uint       `gorm:"index;not null"`
	SeriesID          *uint      `gorm:"index"`
	PositionInSeries  *uint      `gorm:"column:position_in_series"`
	Publisher         *string    `gorm:"size:255"`
	PublicationDate   *string    `gorm:"size:64"`
	ISBN10            *string    `gorm:"column:isbn_10;size:10"`
	ISBN13            *string    `gorm:"column:isbn_13;size:13"`
	PageCount         *uint      `gorm:"column:page_count"`
	Description       *string    `gorm:"type:text"`
	CurrentStatus     string     `gorm:"size:32;not null;default:''"`
	CurrentStatusDate *time.Time `gorm:"column:current_status_date"`
	Rating            int        `gorm:"not null;default:0"`
}

// TableName overrides the table name.
func (Book) TableName() string {
	return "books"
}

// Author is a name attached to one book. Uniqueness per (book, name) is kept by
// the reconciler, not by a constraint.
type Author struct {
	ID         uint   `gorm:"primaryKey"`
	AuthorName string `gorm:"size:255;index:author_name_index;not null"`
	BookID     uint   `gorm:"index;not null"`
	UserID     uint   `gorm:"index;not null"`
}

// TableName overrides the table name.
func (Author) TableName() string {
	return "book_authors"
}

// Tag is a free-form label attached to one book.
type Tag struct {
	ID      uint   `gorm:"primaryKey"`
	TagName string `gorm:"size:255;index:tag_name_index;not null"`
	BookID  uint   `gorm:"index;not null"`
	UserID  uint   `gorm:"index;not null"`
}

// TableName overrides the table name.
func (Tag) TableName() string {
	return "book_tags"
}

// Series groups books. Books reference it weakly.
type Series struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:255;not null"`
	PlannedCount uint   `gorm:"not null"`
	UserID       uint   `gorm:"index;not null"`
}

// TableName overrides the table name.
func (Series) TableName() string {
	return "series"
}
