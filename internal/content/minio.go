package content

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"medsumm/internal/config"
)

// minioFetcher reads objects keyed by CID from an S3-compatible bucket (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type minioFetcher struct {
	client *minio.Client
	bucket string
	log    *zap.Logger
}

// NewMinIO creates a Fetcher backed by MinIO. It validates connectivity and
// requires the bucket to exist; the bucket is never created or written.
func NewMinIO(cfg config.MinIOConfig, log *zap.Logger) (Fetcher, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	return &minioFetcher{client: cli, bucket: cfg.Bucket, log: log}, nil
}

func (m *minioFetcher) Fetch(ctx context.Context, cid string) (string, bool) {
	obj, err := m.client.GetObject(ctx, m.bucket, cid, minio.GetObjectOptions{})
	if err != nil {
		m.log.Warn("failed to get object", zap.String("cid", cid), zap.Error(err))
		return "", false
	}
	defer obj.Close()

	// GetObject is lazy; Stat surfaces a missing key before reading.
	if _, err := obj.Stat(); err != nil {
		m.log.Warn("object unavailable", zap.String("cid", cid), zap.Error(err))
		return "", false
	}
	b, err := io.ReadAll(obj)
	if err != nil {
		m.log.Warn("failed to read object", zap.String("cid", cid), zap.Error(err))
		return "", false
	}
	return string(b), true
}
