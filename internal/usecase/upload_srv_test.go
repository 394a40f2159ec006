package usecase

import (
	"context"
	"strings"
	"testing"

	"travel-agency/internal/dto/request"
	"travel-agency/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUploadService_Upload(t *testing.T) {
	big := request.FileUpload{FileName: "big.png", ContentType: "image/png", Data: make([]byte, 64)}
	empty := request.FileUpload{FileName: "empty.png", ContentType: "image/png"}
	small := png("cover.png")

	tests := []struct {
		name   string
		folder string
		file   *request.FileUpload
		field  string
	}{
		{name: "unknown folder", folder: "secrets", file: &small, field: "folder"},
		{name: "missing file", folder: "misc", file: nil, field: "file"},
		{name: "empty file", folder: "misc", file: &empty, field: "file"},
		{name: "too large", folder: "misc", file: &big, field: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := newMemStorage()
			svc := NewUploadService(newAssetStore(blobs, nil, zap.NewNop()), 32, zap.NewNop())

			_, err := svc.Upload(context.Background(), tt.folder, tt.file)

			var verr *apperror.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Zero(t, blobs.count())
		})
	}
}

func TestUploadService_UploadStoresFile(t *testing.T) {
	blobs := newMemStorage()
	svc := NewUploadService(newAssetStore(blobs, nil, zap.NewNop()), 1024, zap.NewNop())
	file := png("cover.png")

	got, err := svc.Upload(context.Background(), "testimonials", &file)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got.URL, testBaseURL+"/testimonials/"), got.URL)
	assert.True(t, strings.HasSuffix(got.URL, "-cover.png"), got.URL)
	assert.Equal(t, "cover.png", got.Filename)
	assert.Equal(t, "image/png", got.MimeType)
	assert.Equal(t, file.Size(), got.Size)
	assert.Equal(t, 1, blobs.count())
}

func TestUploadService_StorageFailure(t *testing.T) {
	blobs := newMemStorage()
	blobs.failWhen = func(string) bool { return true }
	svc := NewUploadService(newAssetStore(blobs, nil, zap.NewNop()), 0, zap.NewNop())
	file := png("cover.png")

	_, err := svc.Upload(context.Background(), "misc", &file)
	assert.ErrorIs(t, err, apperror.ErrAssetUpload)
}
