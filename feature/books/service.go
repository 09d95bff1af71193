package books

import (
	"context"
	"errors"

	"booktracker/core/errs"
	"booktracker/core/logger"
	"booktracker/core/models"
	"booktracker/core/reconcile"
	"booktracker/core/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles book operations.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	validate *validation.Validator
}

// NewService creates a new book service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		logger:   logger,
		validate: validation.New(),
	}
}

// CreateRequest is the payload of POST /books.
type CreateRequest struct {
	Title            string   `json:"title" validate:"required"`
	Authors          []string `json:"authors" validate:"required,min=1,dive,required"`
	Series           *uint    `json:"series"`
	PositionInSeries *uint    `json:"position_in_series"`
	Publisher        *string  `json:"publisher"`
	PublicationDate  *string  `json:"publication_date"`
	ISBN10           *string  `json:"isbn_10" validate:"omitempty,max=10"`
	ISBN13           *string  `json:"isbn_13" validate:"omitempty,max=13"`
	PageCount        *uint    `json:"page_count"`
	Description      *string  `json:"description"`
	Tags             []string `json:"tags"`
}

// ListBooks returns every book of the owner, oldest first.
func (s *Service) ListBooks(ctx context.Context, ownerID uint) ([]View, error) {
	var books []models.Book
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id").Find(&books).Error; err != nil {
		return nil, errs.Internal("failed to list books", err)
	}
	return loadViews(ctx, s.db, ownerID, books)
}

// GetBook returns one book. A book of another owner is reported as unauthorized.
func (s *Service) GetBook(ctx context.Context, bookID, ownerID uint) (*View, error) {
	var book models.Book
	err := s.db.WithContext(ctx).First(&book, bookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("No book found with the ID: %d", bookID)
	}
	if err != nil {
		return nil, errs.Internal("failed to load book", err)
	}
	if book.UserID != ownerID {
		return nil, errs.Unauthorized("unauthorized")
	}
	return loadView(ctx, s.db, book)
}

// CreateBook stores a new book with its authors and tags.
func (s *Service) CreateBook(ctx context.Context, ownerID uint, req CreateRequest) (*View, error) {
	if err := s.validate.Check(req, "Invalid book parameters"); err != nil {
		return nil, err
	}

	book := models.Book{
		Title:            req.Title,
		UserID:           ownerID,
		PositionInSeries: req.PositionInSeries,
		Publisher:        req.Publisher,
		PublicationDate:  req.PublicationDate,
		ISBN10:           req.ISBN10,
		ISBN13:           req.ISBN13,
		PageCount:        req.PageCount,
		Description:      req.Description,
		Rating:           models.Unrated,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Series != nil {
			if err := requireSeries(tx, *req.Series, ownerID); err != nil {
				return err
			}
			book.SeriesID = req.Series
		}
		if err := tx.Create(&book).Error; err != nil {
			return errs.Internal("failed to create book", err)
		}
		authors := &authorRows{tx: tx, bookID: book.ID, ownerID: ownerID}
		if err := authors.Insert(ctx, reconcile.Dedupe(req.Authors)); err != nil {
			return errs.Internal("failed to create authors", err)
		}
		tags := &tagRows{tx: tx, bookID: book.ID, ownerID: ownerID}
		if err := tags.Insert(ctx, reconcile.Dedupe(req.Tags)); err != nil {
			return errs.Internal("failed to create tags", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithOwner(s.logger, ownerID).Info("Book created", zap.Uint("book_id", book.ID))
	return loadView(ctx, s.db, book)
}

// DeleteBook removes a book together with its authors, tags and status history.
func (s *Service) DeleteBook(ctx context.Context, bookID, ownerID uint) (*View, error) {
	var view *View
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book models.Book
		err := tx.First(&book, bookID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("Could not find book with ID: %d", bookID)
		}
		if err != nil {
			return errs.Internal("failed to load book", err)
		}
		if book.UserID != ownerID {
			return errs.OwnershipViolation("Users can only delete their own books; book %d belongs to user %d", bookID, book.UserID)
		}

		view, err = loadView(ctx, tx, book)
		if err != nil {
			return err
		}

		for _, child := range []any{&models.Author{}, &models.Tag{}, &models.StatusEvent{}} {
			if err := tx.Where("book_id = ? AND user_id = ?", book.ID, ownerID).Delete(child).Error; err != nil {
				return errs.Internal("failed to delete book children", err)
			}
		}
		if err := tx.Delete(&book).Error; err != nil {
			return errs.Internal("failed to delete book", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithOwner(s.logger, ownerID).Info("Book deleted", zap.Uint("book_id", bookID))
	return view, nil
}

// RateBook sets the rating of an owned book. Unrated (0) resets it.
func (s *Service) RateBook(ctx context.Context, bookID, ownerID uint, rating *int) (*View, error) {
	if rating == nil {
		return nil, errs.Validation("New Rating Not Provided")
	}
	if !models.IsValidRating(*rating) {
		return nil, errs.Validation("%d is not a valid rating", *rating)
	}

	book, err := findOwnedBook(s.db.WithContext(ctx), bookID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(book).Update("rating", *rating).Error; err != nil {
		return nil, errs.Internal("failed to update rating", err)
	}
	book.Rating = *rating

	logger.WithOwner(s.logger, ownerID).Info("Book rated",
		zap.Uint("book_id", bookID),
		zap.Int("rating", *rating),
	)
	return loadView(ctx, s.db, *book)
}

func findOwnedBook(db *gorm.DB, bookID, ownerID uint) (*models.Book, error) {
	var book models.Book
	err := db.Where("id = ? AND user_id = ?", bookID, ownerID).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Could not find book with ID: %d", bookID)
	}
	if err != nil {
		return nil, errs.Internal("failed to load book", err)
	}
	return &book, nil
}

func requireSeries(db *gorm.DB, seriesID, ownerID uint) error {
	var count int64
	if err := db.Model(&models.Series{}).Where("id = ? AND user_id = ?", seriesID, ownerID).Count(&count).Error; err != nil {
		return errs.Internal("failed to load series", err)
	}
	if count == 0 {
		return errs.NotFound("Could not find series with ID: %d", seriesID)
	}
	return nil
}
