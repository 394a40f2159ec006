package usecase

import (
	"context"
	"fmt"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/apperror"

	"go.uber.org/zap"
)

var uploadFolders = map[string]bool{
	"destinations": true,
	"sliders":      true,
	"testimonials": true,
	"misc":         true,
}

type UploadService interface {
	Upload(ctx context.Context, folder string, file *request.FileUpload) (*response.UploadResponse, error)
}

type uploadService struct {
	assets   *assetStore
	maxBytes int64
	log      *zap.Logger
}

func NewUploadService(assets *assetStore, maxBytes int64, log *zap.Logger) UploadService {
	return &uploadService{
		assets:   assets,
		maxBytes: maxBytes,
		log:      log.With(zap.String("service", "upload")),
	}
}

func (s *uploadService) Upload(ctx context.Context, folder string, file *request.FileUpload) (*response.UploadResponse, error) {
	if !uploadFolders[folder] {
		return nil, apperror.Field("folder", "Must be one of: destinations, sliders, testimonials, misc")
	}
	if file == nil || file.Size() == 0 {
		return nil, apperror.Field("file", "This field is required")
	}
	if s.maxBytes > 0 && int64(file.Size()) > s.maxBytes {
		return nil, apperror.Field("file", fmt.Sprintf("Maximum size is %d bytes", s.maxBytes))
	}

	url, err := s.assets.Upload(ctx, folder, file)
	if err != nil {
		return nil, err
	}

	s.log.Info("File uploaded", zap.String("folder", folder), zap.String("url", url))
	return &response.UploadResponse{
		URL:      url,
		Filename: file.FileName,
		MimeType: file.ContentType,
		Size:     file.Size(),
	}, nil
}
