package export

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"booktracker/core/errs"
	"booktracker/core/logger"
	"booktracker/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Result describes a written snapshot.
type Result struct {
	Object     string    `json:"object"`
	Books      int       `json:"books"`
	Series     int       `json:"series"`
	Size       int64     `json:"size"`
	ExportedAt time.Time `json:"exported_at"`
}

// Object is a stored snapshot.
type Object struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Service handles library exports.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	group  singleflight.Group
	now    func() time.Time
}

// NewService creates a new export service.
func NewService(db *gorm.DB, client storage.Client, cfg storage.Config, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.ExportPrefix, "/"),
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) ownerPrefix(ownerID uint) string {
	return path.Join(s.prefix, strconv.FormatUint(uint64(ownerID), 10)) + "/"
}

// Export writes a snapshot of the owner's library. Calls for the same owner that
// overlap share the result of the first one. The shared export is detached from
// the callers' cancellation; a caller whose ctx ends stops waiting with ctx.Err()
// while the others still get the result.
func (s *Service) Export(ctx context.Context, ownerID uint) (*Result, error) {
	key := strconv.FormatUint(uint64(ownerID), 10)
	ch := s.group.DoChan(key, func() (any, error) {
		return s.export(context.WithoutCancel(ctx), ownerID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.WithOwner(s.logger, ownerID).Debug("Export shared with in-flight call")
		}
		return res.Val.(*Result), nil
	}
}

func (s *Service) export(ctx context.Context, ownerID uint) (*Result, error) {
	l := logger.WithOwner(s.logger, ownerID)
	start := time.Now()

	lib, err := snapshot(ctx, s.db, ownerID, s.now().UTC())
	if err != nil {
		return nil, errs.Internal("failed to read library", err)
	}
	data, err := json.Marshal(lib)
	if err != nil {
		return nil, errs.Internal("failed to encode library", err)
	}

	object := s.ownerPrefix(ownerID) + uuid.New().String() + ".json"
	_, err = s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return nil, errs.Internal("failed to upload export", err)
	}

	l.Info("Library exported",
		zap.String("object", object),
		zap.Int("books", len(lib.Books)),
		zap.Duration("duration", time.Since(start)),
	)
	return &Result{
		Object:     object,
		Books:      len(lib.Books),
		Series:     len(lib.Series),
		Size:       int64(len(data)),
		ExportedAt: lib.ExportedAt,
	}, nil
}

// List returns the owner's snapshots.
func (s *Service) List(ctx context.Context, ownerID uint) ([]Object, error) {
	objects := make([]Object, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.ownerPrefix(ownerID), Recursive: true}) {
		if obj.Err != nil {
			return nil, errs.Internal("failed to list exports", obj.Err)
		}
		objects = append(objects, Object{
			Name:         path.Base(obj.Key),
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return objects, nil
}

// Open returns a reader over one of the owner's snapshots.
func (s *Service) Open(ctx context.Context, ownerID uint, name string) (io.ReadCloser, error) {
	object, err := s.objectName(ownerID, name)
	if err != nil {
		return nil, err
	}
	if err := s.exists(ctx, ownerID, object); err != nil {
		return nil, err
	}
	r, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.Internal("failed to read export", err)
	}
	return r, nil
}

// Remove deletes one of the owner's snapshots.
func (s *Service) Remove(ctx context.Context, ownerID uint, name string) error {
	object, err := s.objectName(ownerID, name)
	if err != nil {
		return err
	}
	if err := s.exists(ctx, ownerID, object); err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return errs.Internal("failed to remove export", err)
	}
	logger.WithOwner(s.logger, ownerID).Info("Export removed", zap.String("object", object))
	return nil
}

// objectName resolves a snapshot file name under the owner's prefix.
func (s *Service) objectName(ownerID uint, name string) (string, error) {
	id := strings.TrimSuffix(name, ".json")
	if _, err := uuid.Parse(id); err != nil {
		return "", errs.Validation("Invalid export name: %s", name)
	}
	return s.ownerPrefix(ownerID) + id + ".json", nil
}

func (s *Service) exists(ctx context.Context, ownerID uint, object string) error {
	objects, err := s.List(ctx, ownerID)
	if err != nil {
		return err
	}
	name := path.Base(object)
	for _, o := range objects {
		if o.Name == name {
			return nil
		}
	}
	return errs.NotFound("Could not find export %s", name)
}
