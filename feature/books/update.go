package books

import (
	"context"

	"booktracker/core/errs"
	"booktracker/core/logger"
	"booktracker/core/models"
	"booktracker/core/patch"
	"booktracker/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Patch is a partial book update. Absent fields are left untouched; null clears
// nullable fields. Series, position and page count also accept -1 and "" as clear.
type Patch struct {
	Title            patch.Field[string]   `json:"title"`
	Authors          patch.Field[[]string] `json:"authors"`
	Tags             patch.Field[[]string] `json:"tags"`
	Series           patch.Uint            `json:"series"`
	PositionInSeries patch.Uint            `json:"position_in_series"`
	PageCount        patch.Uint            `json:"page_count"`
	Publisher        patch.Field[string]   `json:"publisher"`
	PublicationDate  patch.Field[string]   `json:"publication_date"`
	ISBN10           patch.Field[string]   `json:"isbn_10"`
	ISBN13           patch.Field[string]   `json:"isbn_13"`
	Description      patch.Field[string]   `json:"description"`
}

// UpdateBook applies p to an owned book in a single transaction and returns the
// re-read book.
func (s *Service) UpdateBook(ctx context.Context, bookID, ownerID uint, p Patch) (*View, error) {
	if p.Title.IsCleared() || (p.Title.IsSet() && p.Title.Value() == "") {
		return nil, errs.Validation("Invalid book parameters")
	}

	var book *models.Book
	var authors, tags reconcile.Summary

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		book, err = findOwnedBook(tx, bookID, ownerID)
		if err != nil {
			return err
		}

		if p.Series.IsSet() {
			if err := requireSeries(tx, p.Series.Value(), ownerID); err != nil {
				return err
			}
		}

		if !p.Authors.IsUnchanged() {
			var existing []models.Author
			if err := tx.Where("book_id = ? AND user_id = ?", book.ID, ownerID).Order("id").Find(&existing).Error; err != nil {
				return errs.Internal("failed to load authors", err)
			}
			plan := reconcile.Reconcile(existing, p.Authors.Value(), func(a models.Author) string { return a.AuthorName })
			if _, err := reconcile.Apply(ctx, plan, &authorRows{tx: tx, bookID: book.ID, ownerID: ownerID}); err != nil {
				return errs.Internal("failed to update authors", err)
			}
			authors = plan.Summary()
		}

		if !p.Tags.IsUnchanged() {
			var existing []models.Tag
			if err := tx.Where("book_id = ? AND user_id = ?", book.ID, ownerID).Order("id").Find(&existing).Error; err != nil {
				return errs.Internal("failed to load tags", err)
			}
			plan := reconcile.Reconcile(existing, p.Tags.Value(), func(t models.Tag) string { return t.TagName })
			if _, err := reconcile.Apply(ctx, plan, &tagRows{tx: tx, bookID: book.ID, ownerID: ownerID}); err != nil {
				return errs.Internal("failed to update tags", err)
			}
			tags = plan.Summary()
		}

		p.merge(book)
		if err := tx.Save(book).Error; err != nil {
			return errs.Internal("failed to save book", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithOwner(s.logger, ownerID).Info("Book updated",
		zap.Uint("book_id", bookID),
		zap.Any("authors", authors),
		zap.Any("tags", tags),
	)

	var reread models.Book
	if err := s.db.WithContext(ctx).First(&reread, book.ID).Error; err != nil {
		return nil, errs.Internal("failed to reload book", err)
	}
	return loadView(ctx, s.db, reread)
}

// merge copies the scalar fields of p into b.
func (p Patch) merge(b *models.Book) {
	if p.Title.IsSet() {
		b.Title = p.Title.Value()
	}

	p.Series.ApplyTo(&b.SeriesID)
	if p.Series.IsCleared() && !p.PositionInSeries.IsSet() {
		b.PositionInSeries = nil
	}
	p.PositionInSeries.ApplyTo(&b.PositionInSeries)
	p.PageCount.ApplyTo(&b.PageCount)

	p.Publisher.ApplyTo(&b.Publisher)
	p.PublicationDate.ApplyTo(&b.PublicationDate)
	p.ISBN10.ApplyTo(&b.ISBN10)
	p.ISBN13.ApplyTo(&b.ISBN13)
	p.Description.ApplyTo(&b.Description)
}

// authorRows persists author reconciliation plans for one book.
type authorRows struct {
	tx      *gorm.DB
	bookID  uint
	ownerID uint
}

func (r *authorRows) Delete(ctx context.Context, rows []models.Author) error {
	ids := make([]uint, 0, len(rows))
	for _, a := range rows {
		ids = append(ids, a.ID)
	}
	return r.tx.WithContext(ctx).Where("id IN ? AND user_id = ?", ids, r.ownerID).Delete(&models.Author{}).Error
}

func (r *authorRows) Insert(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]models.Author, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.Author{AuthorName: name, BookID: r.bookID, UserID: r.ownerID})
	}
	return r.tx.WithContext(ctx).Create(&rows).Error
}

// tagRows persists tag reconciliation plans for one book.
type tagRows struct {
	tx      *gorm.DB
	bookID  uint
	ownerID uint
}

func (r *tagRows) Delete(ctx context.Context, rows []models.Tag) error {
	ids := make([]uint, 0, len(rows))
	for _, t := range rows {
		ids = append(ids, t.ID)
	}
	return r.tx.WithContext(ctx).Where("id IN ? AND user_id = ?", ids, r.ownerID).Delete(&models.Tag{}).Error
}

func (r *tagRows) Insert(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]models.Tag, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.Tag{TagName: name, BookID: r.bookID, UserID: r.ownerID})
	}
	return r.tx.WithContext(ctx).Create(&rows).Error
}
