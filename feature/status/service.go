package status

import (
	"context"
	"errors"
	"time"

	"booktracker/core/errs"
	"booktracker/core/logger"
	"booktracker/core/models"
	"booktracker/core/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DateLayout is the wire format of event dates.
const DateLayout = time.DateOnly

// View is the serialized form of a status event.
type View struct {
	ID         uint   `json:"id"`
	Book       uint   `json:"book"`
	StatusCode string `json:"status_code"`
	Date       string `json:"date"`
}

// CreateRequest is the payload of POST /status/:bookID.
type CreateRequest struct {
	StatusCode string `json:"status_code" validate:"required,status_code"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

// DeleteResult is the outcome of DeleteStatusEvent.
type DeleteResult struct {
	Deleted              View       `json:"deleted"`
	NewCurrentStatus     string     `json:"current_status"`
	NewCurrentStatusDate *time.Time `json:"current_status_date"`
}

// Service handles status history operations.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	validate *validation.Validator
}

// NewService creates a new status service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger, validate: validation.New()}
}

func newView(e models.StatusEvent) View {
	return View{ID: e.ID, Book: e.BookID, StatusCode: e.StatusCode, Date: e.Date.Format(DateLayout)}
}

// History lists the events of an owned book, newest first.
func (s *Service) History(ctx context.Context, bookID, ownerID uint) ([]View, error) {
	db := s.db.WithContext(ctx)
	if _, err := findOwnedBook(db, bookID, ownerID); err != nil {
		return nil, err
	}
	var events []models.StatusEvent
	if err := db.Where("book_id = ? AND user_id = ?", bookID, ownerID).
		Order("date DESC, id DESC").
		Find(&events).Error; err != nil {
		return nil, errs.Internal("failed to load status history", err)
	}
	views := make([]View, 0, len(events))
	for _, e := range events {
		views = append(views, newView(e))
	}
	return views, nil
}

// CreateStatusEvent appends an event to an owned book and refreshes its current status.
func (s *Service) CreateStatusEvent(ctx context.Context, bookID, ownerID uint, req CreateRequest) (*View, error) {
	if err := s.validate.Check(req, "Invalid status parameters"); err != nil {
		if validation.FailedOn(err, "status_code", "status_code") {
			return nil, errs.Validation("Invalid status code")
		}
		return nil, err
	}
	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return nil, errs.Invalid("Invalid status parameters", err)
	}

	event := models.StatusEvent{BookID: bookID, UserID: ownerID, StatusCode: req.StatusCode, Date: date}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book, err := findOwnedBook(tx, bookID, ownerID)
		if err != nil {
			return err
		}
		if err := tx.Create(&event).Error; err != nil {
			return errs.Internal("failed to create status", err)
		}
		return Refresh(tx, book)
	})
	if err != nil {
		return nil, err
	}

	logger.WithOwner(s.logger, ownerID).Info("Status added",
		zap.Uint("book_id", bookID),
		zap.String("status", req.StatusCode),
	)
	v := newView(event)
	return &v, nil
}

// DeleteStatusEvent deletes an owned event and recomputes the book's current status
// from the survivors.
func (s *Service) DeleteStatusEvent(ctx context.Context, eventID, ownerID uint) (*DeleteResult, error) {
	var result DeleteResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.StatusEvent
		err := tx.Where("id = ? AND user_id = ?", eventID, ownerID).First(&event).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("Could not find status with ID: %d", eventID)
		}
		if err != nil {
			return errs.Internal("failed to load status", err)
		}

		book, err := findOwnedBook(tx, event.BookID, ownerID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&event).Error; err != nil {
			return errs.Internal("failed to delete status", err)
		}
		if err := Refresh(tx, book); err != nil {
			return err
		}

		result = DeleteResult{
			Deleted:              newView(event),
			NewCurrentStatus:     book.CurrentStatus,
			NewCurrentStatusDate: book.CurrentStatusDate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithOwner(s.logger, ownerID).Info("Status deleted",
		zap.Uint("status_id", eventID),
		zap.String("current_status", result.NewCurrentStatus),
	)
	return &result, nil
}

// Refresh recomputes the cached current status of book from its events.
// Without events the cache is kept.
func Refresh(tx *gorm.DB, book *models.Book) error {
	var events []models.StatusEvent
	if err := tx.Where("book_id = ? AND user_id = ?", book.ID, book.UserID).Find(&events).Error; err != nil {
		return errs.Internal("failed to load status history", err)
	}
	current, ok := Latest(events)
	if !ok {
		return nil
	}

	date := current.Date
	book.CurrentStatus = current.StatusCode
	book.CurrentStatusDate = &date
	if err := tx.Model(book).Updates(map[string]any{
		"current_status":      book.CurrentStatus,
		"current_status_date": book.CurrentStatusDate,
	}).Error; err != nil {
		return errs.Internal("failed to update current status", err)
	}
	return nil
}

// Latest picks the event with the maximum date, ties broken by the highest id.
func Latest(events []models.StatusEvent) (models.StatusEvent, bool) {
	if len(events) == 0 {
		return models.StatusEvent{}, false
	}
	best := events[0]
	for _, e := range events[1:] {
		if e.Date.After(best.Date) || (e.Date.Equal(best.Date) && e.ID > best.ID) {
			best = e
		}
	}
	return best, true
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
