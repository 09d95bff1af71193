package tags

import (
	"context"

	"booktracker/core/errs"
	"booktracker/core/logger"
	"booktracker/core/models"
	"booktracker/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Group is a tag name with the books carrying it.
type Group struct {
	TagName string `json:"tag_name"`
	Books   []uint `json:"books"`
}

// Record is a single stored tag row.
type Record struct {
	ID      uint   `json:"id"`
	TagName string `json:"tag_name"`
	Book    uint   `json:"book"`
}

// RenameResult is the outcome of RenameTag. Deleted is filled only when the
// target book list was empty.
type RenameResult struct {
	TagName string   `json:"tag_name"`
	Books   []uint   `json:"books"`
	Deleted []Record `json:"deleted,omitempty"`
}

// Service handles tag operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new tag service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListTags groups the owner's tag rows by name.
func (s *Service) ListTags(ctx context.Context, ownerID uint) ([]Group, error) {
	var rows []models.Tag
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("tag_name, book_id").
		Find(&rows).Error; err != nil {
		return nil, errs.Internal("failed to list tags", err)
	}

	groups := make([]Group, 0)
	for _, r := range rows {
		n := len(groups)
		if n == 0 || groups[n-1].TagName != r.TagName {
			groups = append(groups, Group{TagName: r.TagName, Books: []uint{}})
			n++
		}
		books := groups[n-1].Books
		if len(books) == 0 || books[len(books)-1] != r.BookID {
			groups[n-1].Books = append(books, r.BookID)
		}
	}
	return groups, nil
}

// RenameTag renames oldName to newName on the given books and removes it from
// every other book of the owner.
func (s *Service) RenameTag(ctx context.Context, oldName string, ownerID uint, newName string, bookIDs []uint) (*RenameResult, error) {
	var result *RenameResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Tag
		if err := tx.Where("tag_name = ? AND user_id = ?", oldName, ownerID).Order("id").Find(&existing).Error; err != nil {
			return errs.Internal("failed to load tags", err)
		}
		if len(existing) == 0 {
			return errs.NotFound("No tags match the name '%s'", oldName)
		}

		if len(bookIDs) == 0 {
			if err := deleteRows(tx, ownerID, existing); err != nil {
				return err
			}
			result = &RenameResult{TagName: oldName, Books: []uint{}, Deleted: records(existing)}
			return nil
		}

		targets := reconcile.Dedupe(bookIDs)
		if err := requireBooks(tx, ownerID, targets); err != nil {
			return err
		}

		m := &renamer{tx: tx, ownerID: ownerID, newName: newName, tagged: map[uint]bool{}}
		if newName != oldName {
			var tagged []uint
			if err := tx.Model(&models.Tag{}).
				Where("tag_name = ? AND user_id = ? AND book_id IN ?", newName, ownerID, targets).
				Pluck("book_id", &tagged).Error; err != nil {
				return errs.Internal("failed to load tags", err)
			}
			for _, id := range tagged {
				m.tagged[id] = true
			}
		}

		plan := reconcile.Reconcile(existing, targets, func(t models.Tag) uint { return t.BookID })
		if _, err := reconcile.Apply(ctx, plan, m); err != nil {
			return errs.Internal("failed to rename tag", err)
		}

		logger.WithOwner(s.logger, ownerID).Info("Tag renamed",
			zap.String("from", oldName),
			zap.String("to", newName),
			zap.Any("plan", plan.Summary()),
		)
		result = &RenameResult{TagName: newName, Books: targets}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteTag removes name from every book of the owner and returns the deleted rows.
func (s *Service) DeleteTag(ctx context.Context, name string, ownerID uint) ([]Record, error) {
	var deleted []Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.Tag
		if err := tx.Where("tag_name = ? AND user_id = ?", name, ownerID).Order("id").Find(&rows).Error; err != nil {
			return errs.Internal("failed to load tags", err)
		}
		if len(rows) == 0 {
			return errs.NotFound("Could not find any tags matching the name '%s'", name)
		}
		if err := deleteRows(tx, ownerID, rows); err != nil {
			return err
		}
		deleted = records(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithOwner(s.logger, ownerID).Info("Tag deleted",
		zap.String("tag", name),
		zap.Int("rows", len(deleted)),
	)
	return deleted, nil
}

// requireBooks fails on the first id, in request order, that is not a book of the owner.
func requireBooks(tx *gorm.DB, ownerID uint, ids []uint) error {
	var found []uint
	if err := tx.Model(&models.Book{}).Where("id IN ? AND user_id = ?", ids, ownerID).Pluck("id", &found).Error; err != nil {
		return errs.Internal("failed to load books", err)
	}
	owned := make(map[uint]bool, len(found))
	for _, id := range found {
		owned[id] = true
	}
	for _, id := range ids {
		if !owned[id] {
			return errs.NotFound("Could not find book with ID: %d", id)
		}
	}
	return nil
}

func deleteRows(tx *gorm.DB, ownerID uint, rows []models.Tag) error {
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	if err := tx.Where("id IN ? AND user_id = ?", ids, ownerID).Delete(&models.Tag{}).Error; err != nil {
		return errs.Internal("failed to delete tags", err)
	}
	return nil
}

func records(rows []models.Tag) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, Record{ID: r.ID, TagName: r.TagName, Book: r.BookID})
	}
	return out
}

// renamer applies a rename plan. Books in tagged already carry newName: their old
// row is dropped instead of renamed and no row is inserted for them.
type renamer struct {
	tx      *gorm.DB
	ownerID uint
	newName string
	tagged  map[uint]bool
}

func (r *renamer) Delete(ctx context.Context, rows []models.Tag) error {
	return r.deleteIDs(ctx, rows)
}

func (r *renamer) Keep(ctx context.Context, rows []models.Tag) error {
	var rename, drop []models.Tag
	for _, row := range rows {
		if r.tagged[row.BookID] {
			drop = append(drop, row)
		} else {
			rename = append(rename, row)
		}
	}
	if err := r.deleteIDs(ctx, drop); err != nil {
		return err
	}
	if len(rename) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(rename))
	for _, row := range rename {
		ids = append(ids, row.ID)
	}
	return r.tx.WithContext(ctx).Model(&models.Tag{}).
		Where("id IN ? AND user_id = ?", ids, r.ownerID).
		Update("tag_name", r.newName).Error
}

func (r *renamer) Insert(ctx context.Context, bookIDs []uint) error {
	rows := make([]models.Tag, 0, len(bookIDs))
	for _, id := range bookIDs {
		if r.tagged[id] {
			continue
		}
		rows = append(rows, models.Tag{TagName: r.newName, BookID: id, UserID: r.ownerID})
	}
	if len(rows) == 0 {
		return nil
	}
	return r.tx.WithContext(ctx).Create(&rows).Error
}

func (r *renamer) deleteIDs(ctx context.Context, rows []models.Tag) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return r.tx.WithContext(ctx).Where("id IN ? AND user_id = ?", ids, r.ownerID).Delete(&models.Tag{}).Error
}
