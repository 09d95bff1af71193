package export

import (
	"context"
	"time"

	"booktracker/core/models"

	"gorm.io/gorm"
)

// Library is the exported document.
type Library struct {
	Owner      uint           `json:"owner"`
	ExportedAt time.Time      `json:"exported_at"`
	Books      []BookRecord   `json:"books"`
	Series     []SeriesRecord `json:"series"`
}

// BookRecord is a book with everything attached to it.
type BookRecord struct {
	ID                uint           `json:"id"`
	Title             string         `json:"title"`
	Authors           []string       `json:"authors"`
	Tags              []string       `json:"tags"`
	Series            *uint          `json:"series"`
	PositionInSeries  *uint          `json:"position_in_series"`
	Publisher         *string        `json:"publisher"`
	PublicationDate   *string        `json:"publication_date"`
	ISBN10            *string        `json:"isbn_10"`
	ISBN13            *string        `json:"isbn_13"`
	PageCount         *uint          `json:"page_count"`
	Description       *string        `json:"description"`
	Rating            int            `json:"rating"`
	CurrentStatus     string         `json:"current_status"`
	CurrentStatusDate *time.Time     `json:"current_status_date"`
	History           []StatusRecord `json:"history"`
}

// StatusRecord is one status event.
type StatusRecord struct {
	StatusCode string    `json:"status_code"`
	Date       time.Time `json:"date"`
}

// SeriesRecord is one series.
type SeriesRecord struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	PlannedCount uint   `json:"planned_count"`
}

// snapshot reads the owner's library in one read transaction.
func snapshot(ctx context.Context, db *gorm.DB, ownerID uint, now time.Time) (*Library, error) {
	lib := &Library{Owner: ownerID, ExportedAt: now, Books: []BookRecord{}, Series: []SeriesRecord{}}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var books []models.Book
		if err := tx.Where("user_id = ?", ownerID).Order("id").Find(&books).Error; err != nil {
			return err
		}
		var authors []models.Author
		if err := tx.Where("user_id = ?", ownerID).Order("id").Find(&authors).Error; err != nil {
			return err
		}
		var tags []models.Tag
		if err := tx.Where("user_id = ?", ownerID).Order("id").Find(&tags).Error; err != nil {
			return err
		}
		var events []models.StatusEvent
		if err := tx.Where("user_id = ?", ownerID).Order("date, id").Find(&events).Error; err != nil {
			return err
		}
		var series []models.Series
		if err := tx.Where("user_id = ?", ownerID).Order("id").Find(&series).Error; err != nil {
			return err
		}

		index := make(map[uint]int, len(books))
		for i, b := range books {
			index[b.ID] = i
			lib.Books = append(lib.Books, BookRecord{
				ID:                b.ID,
				Title:             b.Title,
				Authors:           []string{},
				Tags:              []string{},
				Series:            b.SeriesID,
				PositionInSeries:  b.PositionInSeries,
				Publisher:         b.Publisher,
				PublicationDate:   b.PublicationDate,
				ISBN10:            b.ISBN10,
				ISBN13:            b.ISBN13,
				PageCount:         b.PageCount,
				Description:       b.Description,
				Rating:            b.Rating,
				CurrentStatus:     b.CurrentStatus,
				CurrentStatusDate: b.CurrentStatusDate,
				History:           []StatusRecord{},
			})
		}
		for _, a := range authors {
			if i, ok := index[a.BookID]; ok {
				lib.Books[i].Authors = append(lib.Books[i].Authors, a.AuthorName)
			}
		}
		for _, t := range tags {
			if i, ok := index[t.BookID]; ok {
				lib.Books[i].Tags = append(lib.Books[i].Tags, t.TagName)
			}
		}
		for _, e := range events {
			if i, ok := index[e.BookID]; ok {
				lib.Books[i].History = append(lib.Books[i].History, StatusRecord{StatusCode: e.StatusCode, Date: e.Date})
			}
		}
		for _, s := range series {
			lib.Series = append(lib.Series, SeriesRecord{ID: s.ID, Name: s.Name, PlannedCount: s.PlannedCount})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lib, nil
}
