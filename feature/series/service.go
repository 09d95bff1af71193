package series

import (
	"context"
	"errors"

	"booktracker/core/errs"
	"booktracker/core/logger"
	"booktracker/core/models"
	"booktracker/core/patch"
	"booktracker/core/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// View is the serialized form of a series.
type View struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	PlannedCount uint   `json:"planned_count"`
	Books        []uint `json:"books"`
}

// CreateRequest is the payload of POST /series.
type CreateRequest struct {
	Name         string `json:"name" validate:"required"`
	PlannedCount *uint  `json:"planned_count" validate:"required"`
}

// Patch is a partial series update.
type Patch struct {
	Name         patch.Field[string] `json:"name"`
	PlannedCount patch.Field[uint]   `json:"planned_count"`
}

// Service handles series operations.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	validate *validation.Validator
}

// NewService creates a new series service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger, validate: validation.New()}
}

// ListSeries returns the owner's series with the ids of their books.
func (s *Service) ListSeries(ctx context.Context, ownerID uint) ([]View, error) {
	var rows []models.Series
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id").Find(&rows).Error; err != nil {
		return nil, errs.Internal("failed to list series", err)
	}
	return s.views(ctx, ownerID, rows)
}

// CreateSeries stores a new series.
func (s *Service) CreateSeries(ctx context.Context, ownerID uint, req CreateRequest) (*View, error) {
	if err := s.validate.Check(req, "Invalid series parameters"); err != nil {
		return nil, err
	}
	row := models.Series{Name: req.Name, PlannedCount: *req.PlannedCount, UserID: ownerID}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, errs.Internal("failed to create series", err)
	}
	logger.WithOwner(s.logger, ownerID).Info("Series created", zap.Uint("series_id", row.ID))
	return &View{ID: row.ID, Name: row.Name, PlannedCount: row.PlannedCount, Books: []uint{}}, nil
}

// UpdateSeries applies p to an owned series.
func (s *Service) UpdateSeries(ctx context.Context, seriesID, ownerID uint, p Patch) (*View, error) {
	if p.Name.IsCleared() || (p.Name.IsSet() && p.Name.Value() == "") || p.PlannedCount.IsCleared() {
		return nil, errs.Validation("Invalid series parameters")
	}

	row, err := findOwned(s.db.WithContext(ctx), seriesID, ownerID)
	if err != nil {
		return nil, err
	}
	if p.Name.IsSet() {
		row.Name = p.Name.Value()
	}
	if p.PlannedCount.IsSet() {
		row.PlannedCount = p.PlannedCount.Value()
	}
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, errs.Internal("failed to save series", err)
	}

	logger.WithOwner(s.logger, ownerID).Info("Series updated", zap.Uint("series_id", seriesID))
	views, err := s.views(ctx, ownerID, []models.Series{*row})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// DeleteSeries deletes a series and detaches its books.
func (s *Service) DeleteSeries(ctx context.Context, seriesID, ownerID uint) (*View, error) {
	var view View
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Series
		err := tx.First(&row, seriesID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("Could not find series with ID: %d", seriesID)
		}
		if err != nil {
			return errs.Internal("failed to load series", err)
		}
		if row.UserID != ownerID {
			return errs.OwnershipViolation("Users can only delete their own series; series %d belongs to user %d", seriesID, row.UserID)
		}

		view = View{ID: row.ID, Name: row.Name, PlannedCount: row.PlannedCount, Books: []uint{}}
		if err := tx.Model(&models.Book{}).
			Where("series_id = ? AND user_id = ?", row.ID, ownerID).
			Pluck("id", &view.Books).Error; err != nil {
			return errs.Internal("failed to load series books", err)
		}

		if err := tx.Model(&models.Book{}).
			Where("series_id = ?", row.ID).
			Updates(map[string]any{"series_id": nil, "position_in_series": nil}).Error; err != nil {
			return errs.Internal("failed to detach books", err)
		}
		if err := tx.Delete(&row).Error; err != nil {
			return errs.Internal("failed to delete series", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithOwner(s.logger, ownerID).Info("Series deleted",
		zap.Uint("series_id", seriesID),
		zap.Int("detached", len(view.Books)),
	)
	return &view, nil
}

func (s *Service) views(ctx context.Context, ownerID uint, rows []models.Series) ([]View, error) {
	views := make([]View, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	var books []models.Book
	if err := s.db.WithContext(ctx).
		Select("id", "series_id").
		Where("series_id IN ? AND user_id = ?", ids, ownerID).
		Order("position_in_series, id").
		Find(&books).Error; err != nil {
		return nil, errs.Internal("failed to load series books", err)
	}

	bySeries := make(map[uint][]uint, len(rows))
	for _, b := range books {
		bySeries[*b.SeriesID] = append(bySeries[*b.SeriesID], b.ID)
	}
	for _, r := range rows {
		v := View{ID: r.ID, Name: r.Name, PlannedCount: r.PlannedCount, Books: []uint{}}
		if ids, ok := bySeries[r.ID]; ok {
			v.Books = ids
		}
		views = append(views, v)
	}
	return views, nil
}

func findOwned(db *gorm.DB, seriesID, ownerID uint) (*models.Series, error) {
	var row models.Series
	err := db.Where("id = ? AND user_id = ?", seriesID, ownerID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Could not find series with ID: %d", seriesID)
	}
	if err != nil {
		return nil, errs.Internal("failed to load series", err)
	}
	return &row, nil
}
