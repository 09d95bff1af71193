package books

import (
	"context"
	"time"

	"booktracker/core/errs"
	"booktracker/core/models"

	"gorm.io/gorm"
)

// View is the serialized form of a book.
type View struct {
	ID                uint       `json:"id"`
	Title             string     `json:"title"`
	Authors           []string   `json:"authors"`
	PositionInSeries  *uint      `json:"position_in_series"`
	Series            *uint      `json:"series"`
	Publisher         *string    `json:"publisher"`
	PublicationDate   *string    `json:"publication_date"`
	ISBN10            *string    `json:"isbn_10"`
	ISBN13            *string    `json:"isbn_13"`
	PageCount         *uint      `json:"page_count"`
	Description       *string    `json:"description"`
	CurrentStatus     string     `json:"current_status"`
	CurrentStatusDate *time.Time `json:"current_status_date"`
	Rating            int        `json:"rating"`
	Tags              []string   `json:"tags"`
}

func newView(b models.Book) View {
	return View{
		ID:                b.ID,
		Title:             b.Title,
		Authors:           []string{},
		PositionInSeries:  b.PositionInSeries,
		Series:            b.SeriesID,
		Publisher:         b.Publisher,
		PublicationDate:   b.PublicationDate,
		ISBN10:            b.ISBN10,
		ISBN13:            b.ISBN13,
		PageCount:         b.PageCount,
		Description:       b.Description,
		CurrentStatus:     b.CurrentStatus,
		CurrentStatusDate: b.CurrentStatusDate,
		Rating:            b.Rating,
		Tags:              []string{},
	}
}

// loadViews builds views for books of a single owner, attaching authors and tags
// newest first.
func loadViews(ctx context.Context, db *gorm.DB, ownerID uint, books []models.Book) ([]View, error) {
	views := make([]View, 0, len(books))
	if len(books) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}

	var authors []models.Author
	if err := db.WithContext(ctx).
		Where("book_id IN ? AND user_id = ?", ids, ownerID).
		Order("id DESC").
		Find(&authors).Error; err != nil {
		return nil, errs.Internal("failed to load authors", err)
	}

	var tags []models.Tag
	if err := db.WithContext(ctx).
		Where("book_id IN ? AND user_id = ?", ids, ownerID).
		Order("id DESC").
		Find(&tags).Error; err != nil {
		return nil, errs.Internal("failed to load tags", err)
	}

	authorsByBook := make(map[uint][]string, len(books))
	for _, a := range authors {
		authorsByBook[a.BookID] = append(authorsByBook[a.BookID], a.AuthorName)
	}
	tagsByBook := make(map[uint][]string, len(books))
	for _, t := range tags {
		tagsByBook[t.BookID] = append(tagsByBook[t.BookID], t.TagName)
	}

	for _, b := range books {
		v := newView(b)
		if names, ok := authorsByBook[b.ID]; ok {
			v.Authors = names
		}
		if names, ok := tagsByBook[b.ID]; ok {
			v.Tags = names
		}
		views = append(views, v)
	}
	return views, nil
}

func loadView(ctx context.Context, db *gorm.DB, book models.Book) (*View, error) {
	views, err := loadViews(ctx, db, book.UserID, []models.Book{book})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
