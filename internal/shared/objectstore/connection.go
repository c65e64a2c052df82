package objectstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"starforge/internal/shared/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Client struct {
	*minio.Client
	Bucket string
}

// Connect opens the S3-compatible store used for system exports and makes
// sure the export bucket exists. It returns nil when export is disabled.
func Connect(ctx context.Context, cfg config.ExportConfig) (*Client, error) {
	logger := slog.With("component", "objectstore", "operation", "connect", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)

	if !cfg.Enabled {
		logger.Info("Export disabled, stored systems will not be exported")
		return nil, nil
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Error("Failed to create object store client", "error", err)
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		logger.Error("Failed to check export bucket", "error", err)
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			logger.Error("Failed to create export bucket", "error", err)
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("Export bucket created")
	}

	logger.Info("Object store connection established successfully")

	return &Client{Client: mc, Bucket: cfg.Bucket}, nil
}

// Ping checks that the export bucket is still reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return nil
	}
	exists, err := c.BucketExists(ctx, c.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", c.Bucket)
	}
	return nil
}
