package usecase

import (
	"context"
	"fmt"
	"time"

	"travel-agency/internal/dto/request"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/imaging"
	"travel-agency/pkg/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// parallel blob calls per request
const assetConcurrency = 4

// assetStore optimizes images and pushes them to blob storage. Deletes are
// best effort: failures are logged and never returned.
type assetStore struct {
	storage   storage.BlobStorage
	optimizer *imaging.Optimizer
	log       *zap.Logger
	now       func() time.Time
}

func newAssetStore(blob storage.BlobStorage, optimizer *imaging.Optimizer, log *zap.Logger) *assetStore {
	return &assetStore{
		storage:   blob,
		optimizer: optimizer,
		log:       log.With(zap.String("component", "assets")),
		now:       time.Now,
	}
}

// Upload stores one file under folder and returns its public URL
func (a *assetStore) Upload(ctx context.Context, folder string, file *request.FileUpload) (string, error) {
	contentType := imaging.ContentTypeFor(file.ContentType)
	if !imaging.IsAllowedType(contentType) {
		return "", fmt.Errorf("%w: %s has unsupported type %q", apperror.ErrValidation, file.FileName, file.ContentType)
	}

	data, fileName := file.Data, file.FileName
	if a.optimizer != nil {
		res := a.optimizer.Optimize(file.Data, contentType, imaging.Options{})
		data, contentType = res.Bytes, res.ContentType
		fileName = imaging.WithExtension(fileName, contentType)
	}

	name := storage.ObjectName(folder, fileName, a.now())
	url, err := a.storage.Upload(ctx, name, data, contentType)
	if err != nil {
		a.log.Error("Failed to upload asset",
			zap.Error(err),
			zap.String("file", file.FileName),
			zap.String("object", name),
		)
		return "", fmt.Errorf("%w: %s: %v", apperror.ErrAssetUpload, file.FileName, err)
	}

	a.log.Debug("Asset uploaded",
		zap.String("object", name),
		zap.Int("original_size", len(file.Data)),
		zap.Int("stored_size", len(data)),
	)
	return url, nil
}

// UploadAll uploads files concurrently and keeps their order. If any upload
// fails the ones that succeeded are removed again.
func (a *assetStore) UploadAll(ctx context.Context, folder string, files []request.FileUpload) ([]string, error) {
	urls := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(assetConcurrency)
	for i := range files {
		g.Go(func() error {
			url, err := a.Upload(gctx, folder, &files[i])
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.RemoveAll(ctx, urls)
		return nil, err
	}
	return urls, nil
}

// RemoveAll deletes the blobs behind urls. URLs outside our bucket and empty
// entries are skipped.
func (a *assetStore) RemoveAll(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}

	// detached so a cancelled request still cleans up
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(assetConcurrency)
	for _, url := range urls {
		if url == "" {
			continue
		}
		name, ok := a.storage.BlobNameFromURL(url)
		if !ok {
			a.log.Debug("Skipping foreign asset URL", zap.String("url", url))
			continue
		}
		g.Go(func() error {
			if err := a.storage.Delete(ctx, name); err != nil {
				a.log.Warn("Failed to delete asset", zap.Error(err), zap.String("object", name))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// orphanedURLs returns the entries of before that are missing from after
func orphanedURLs(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, u := range after {
		keep[u] = struct{}{}
	}
	var out []string
	for _, u := range before {
		if _, ok := keep[u]; !ok {
			out = append(out, u)
		}
	}
	return out
}
