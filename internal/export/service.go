// Package export writes JSON snapshots of stored systems to object storage.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"starforge/internal/system"

	"github.com/minio/minio-go/v7"
)

const contentType = "application/json"

// ObjectStore is the subset of the minio client the exporter needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Service struct {
	client ObjectStore
	bucket string
	logger *slog.Logger
}

func NewService(client ObjectStore, bucket string, logger *slog.Logger) *Service {
	logger.Debug("Initializing export service", "bucket", bucket)

	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

func ObjectKey(sys *system.System) string {
	return fmt.Sprintf("systems/%s.json", sys.ID)
}

// Export uploads sys and returns the object key it was stored under.
func (s *Service) Export(ctx context.Context, sys *system.System) (string, error) {
	key := ObjectKey(sys)
	logger := s.logger.With("component", "export_service", "operation", "export_system", "system_id", sys.ID, "key", key)

	data, err := json.MarshalIndent(sys, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal system: %w", err)
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"seed": fmt.Sprint(sys.Seed),
		},
	})
	if err != nil {
		logger.Error("Failed to upload system", "error", err)
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	logger.Debug("System exported", "size", info.Size, "etag", info.ETag)
	return key, nil
}

// Remove deletes a snapshot written by Export.
func (s *Service) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	s.logger.Debug("Export removed", "component", "export_service", "key", key)
	return nil
}
