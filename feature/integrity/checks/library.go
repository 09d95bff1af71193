package checks

import (
	"context"
	"fmt"

	"booktracker/core/models"
	"booktracker/feature/status"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LibraryReport lists inconsistent rows of one owner's library.
type LibraryReport struct {
	OrphanAuthors  []uint `json:"orphan_authors"`
	OrphanTags     []uint `json:"orphan_tags"`
	OrphanStatuses []uint `json:"orphan_statuses"`
	DanglingSeries []uint `json:"dangling_series"`
	StaleStatus    []uint `json:"stale_status"`
}

// Clean reports whether nothing was found.
func (r *LibraryReport) Clean() bool {
	return len(r.OrphanAuthors)+len(r.OrphanTags)+len(r.OrphanStatuses)+len(r.DanglingSeries)+len(r.StaleStatus) == 0
}

// CheckLibrary inspects the owner's library. Ids in DanglingSeries and StaleStatus
// are book ids; the others are ids of the orphaned rows.
func CheckLibrary(ctx context.Context, db *gorm.DB, ownerID uint) (*LibraryReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	tx := db.WithContext(ctx)
	report := &LibraryReport{
		OrphanAuthors:  []uint{},
		OrphanTags:     []uint{},
		OrphanStatuses: []uint{},
		DanglingSeries: []uint{},
		StaleStatus:    []uint{},
	}

	ownedBooks := tx.Model(&models.Book{}).Select("id").Where("user_id = ?", ownerID)
	orphans := []struct {
		model any
		dst   *[]uint
	}{
		{&models.Author{}, &report.OrphanAuthors},
		{&models.Tag{}, &report.OrphanTags},
		{&models.StatusEvent{}, &report.OrphanStatuses},
	}
	for _, o := range orphans {
		if err := tx.Model(o.model).
			Where("user_id = ? AND book_id NOT IN (?)", ownerID, ownedBooks).
			Order("id").
			Pluck("id", o.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to find orphans: %w", err)
		}
	}

	ownedSeries := tx.Model(&models.Series{}).Select("id").Where("user_id = ?", ownerID)
	if err := tx.Model(&models.Book{}).
		Where("user_id = ? AND series_id IS NOT NULL AND series_id NOT IN (?)", ownerID, ownedSeries).
		Order("id").
		Pluck("id", &report.DanglingSeries).Error; err != nil {
		return nil, fmt.Errorf("failed to find dangling series: %w", err)
	}

	stale, err := staleBooks(tx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, b := range stale {
		report.StaleStatus = append(report.StaleStatus, b.ID)
	}

	return report, nil
}

// FixLibrary repairs what CheckLibrary found, in one transaction.
func FixLibrary(ctx context.Context, db *gorm.DB, logger *zap.Logger, ownerID uint, report *LibraryReport) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deletes := []struct {
			model any
			ids   []uint
		}{
			{&models.Author{}, report.OrphanAuthors},
			{&models.Tag{}, report.OrphanTags},
			{&models.StatusEvent{}, report.OrphanStatuses},
		}
		for _, d := range deletes {
			if len(d.ids) == 0 {
				continue
			}
			if err := tx.Where("id IN ? AND user_id = ?", d.ids, ownerID).Delete(d.model).Error; err != nil {
				return fmt.Errorf("failed to delete orphans: %w", err)
			}
		}

		if len(report.DanglingSeries) > 0 {
			if err := tx.Model(&models.Book{}).
				Where("id IN ? AND user_id = ?", report.DanglingSeries, ownerID).
				Updates(map[string]any{"series_id": nil, "position_in_series": nil}).Error; err != nil {
				return fmt.Errorf("failed to detach books: %w", err)
			}
		}

		if len(report.StaleStatus) > 0 {
			var books []models.Book
			if err := tx.Where("id IN ? AND user_id = ?", report.StaleStatus, ownerID).Find(&books).Error; err != nil {
				return fmt.Errorf("failed to load books: %w", err)
			}
			for i := range books {
				if err := status.Refresh(tx, &books[i]); err != nil {
					return err
				}
			}
		}

		logger.Info("Library repaired",
			zap.Uint("owner_id", ownerID),
			zap.Int("orphans", len(report.OrphanAuthors)+len(report.OrphanTags)+len(report.OrphanStatuses)),
			zap.Int("dangling_series", len(report.DanglingSeries)),
			zap.Int("stale_status", len(report.StaleStatus)),
		)
		return nil
	})
}

// staleBooks returns books whose cached status differs from their latest event.
func staleBooks(tx *gorm.DB, ownerID uint) ([]models.Book, error) {
	var books []models.Book
	if err := tx.Where("user_id = ?", ownerID).Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	var events []models.StatusEvent
	if err := tx.Where("user_id = ?", ownerID).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}

	byBook := make(map[uint][]models.StatusEvent)
	for _, e := range events {
		byBook[e.BookID] = append(byBook[e.BookID], e)
	}

	var stale []models.Book
	for _, b := range books {
		latest, ok := status.Latest(byBook[b.ID])
		if !ok {
			continue
		}
		if b.CurrentStatus != latest.StatusCode || b.CurrentStatusDate == nil || !b.CurrentStatusDate.Equal(latest.Date) {
			stale = append(stale, b)
		}
	}
	return stale, nil
}
