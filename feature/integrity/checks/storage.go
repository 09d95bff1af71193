package checks

import (
	"context"
	"fmt"
	"strings"

	"booktracker/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport is the result of a storage check.
type StorageReport struct {
	Bucket  string `json:"bucket"`
	Exists  bool   `json:"exists"`
	Exports int    `json:"exports"`
}

// CheckStorage reports whether the bucket exists and how many snapshots it holds.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is nil")
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report := &StorageReport{Bucket: bucket, Exists: exists}
	if !exists {
		return report, nil
	}

	opts := minio.ListObjectsOptions{
		Prefix:    strings.Trim(prefix, "/") + "/",
		Recursive: true,
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list exports: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			report.Exports++
		}
	}
	return report, nil
}
