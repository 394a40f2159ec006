package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"travel-agency/pkg/utils"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var ErrStorageDisabled = errors.New("blob storage is not configured")

// BlobStorage stores uploaded assets and hands back their public URL
type BlobStorage interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
	// BlobNameFromURL reports false for URLs this storage did not issue
	BlobNameFromURL(rawURL string) (string, bool)
	Ping(ctx context.Context) error
}

type minioStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	log     *zap.Logger
}

func NewMinioStorage(ctx context.Context, cfg utils.StorageConfig, log *zap.Logger) (BlobStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &minioStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: BaseURL(cfg),
		log:     log.With(zap.String("storage", "minio")),
	}, nil
}

// BaseURL is the prefix every issued URL starts with: {public or endpoint}/{bucket}
func BaseURL(cfg utils.StorageConfig) string {
	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.Endpoint
	}
	return base + "/" + cfg.Bucket
}

func (s *minioStorage) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.log.Error("Failed to upload blob",
			zap.Error(err),
			zap.String("name", name),
			zap.Int("size", len(data)),
		)
		return "", fmt.Errorf("upload blob %s: %w", name, err)
	}

	s.log.Info("Blob uploaded", zap.String("name", name), zap.Int("size", len(data)))
	return s.baseURL + "/" + name, nil
}

func (s *minioStorage) Delete(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete blob %s: %w", name, err)
	}
	s.log.Info("Blob deleted", zap.String("name", name))
	return nil
}

func (s *minioStorage) BlobNameFromURL(rawURL string) (string, bool) {
	return blobNameFromURL(s.baseURL, rawURL)
}

func (s *minioStorage) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

func blobNameFromURL(baseURL, rawURL string) (string, bool) {
	prefix := baseURL + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(rawURL, prefix)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name, err := url.PathUnescape(name)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// disabledStorage refuses uploads; deletes are no-ops
type disabledStorage struct{}

func NewDisabledStorage() BlobStorage {
	return disabledStorage{}
}

func (disabledStorage) Upload(context.Context, string, []byte, string) (string, error) {
	return "", ErrStorageDisabled
}

func (disabledStorage) Delete(context.Context, string) error { return nil }

func (disabledStorage) BlobNameFromURL(string) (string, bool) { return "", false }

func (disabledStorage) Ping(context.Context) error { return nil }

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ObjectName builds {folder}/{unix-ms}-{uuid}-{sanitized file name}
func ObjectName(folder, fileName string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "-"), "-")
	if base == "" || base == "." {
		base = "file"
	}
	return fmt.Sprintf("%s/%d-%s-%s", strings.Trim(folder, "/"), now.UnixMilli(), uuid.NewString(), base)
}
