package integrity

import (
	"context"
	"errors"

	"booktracker/core/database"
	"booktracker/core/storage"
	"booktracker/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errNoStorage = errors.New("storage is not configured")

// Service handles integrity checks.
type Service struct {
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
}

// CheckSchema compares the database with the data model.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// FixSchema migrates the database to the data model.
func (s *Service) FixSchema(ctx context.Context) error {
	return database.Migrate(ctx, s.db)
}

// CheckStorage inspects the export bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, errNoStorage
	}
	return checks.CheckStorage(ctx, s.client, s.cfg.Bucket, s.cfg.ExportPrefix)
}

// FixStorage creates the export bucket when missing.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return errNoStorage
	}
	created, err := storage.EnsureBucket(ctx, s.client, s.cfg.Bucket, s.cfg.Region)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("Created missing bucket", zap.String("bucket", s.cfg.Bucket))
	}
	return nil
}

// CheckLibrary inspects one owner's library.
func (s *Service) CheckLibrary(ctx context.Context, ownerID uint) (*checks.LibraryReport, error) {
	return checks.CheckLibrary(ctx, s.db, ownerID)
}

// FixLibrary repairs the findings of a library check.
func (s *Service) FixLibrary(ctx context.Context, ownerID uint, report *checks.LibraryReport) error {
	return checks.FixLibrary(ctx, s.db, s.logger, ownerID, report)
}
