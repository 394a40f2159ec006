package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestOptimize_DownsizesWideImage(t *testing.T) {
	o := NewOptimizer(100, 80, zap.NewNop())

	res := o.Optimize(encodeJPEG(t, 400, 200), "image/jpeg", Options{})

	assert.True(t, res.Resized)
	assert.Equal(t, "image/jpeg", res.ContentType)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestOptimize_NeverEnlarges(t *testing.T) {
	o := NewOptimizer(1920, 80, zap.NewNop())

	res := o.Optimize(encodePNG(t, 40, 30), "image/png", Options{Width: 800})

	assert.False(t, res.Resized)
	assert.Equal(t, "image/png", res.ContentType)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestOptimize_ExplicitFormat(t *testing.T) {
	o := NewOptimizer(0, 0, zap.NewNop())

	res := o.Optimize(encodePNG(t, 20, 20), "image/png", Options{Format: FormatJPEG, Quality: 50})

	assert.Equal(t, "image/jpeg", res.ContentType)
	_, format, err := image.DecodeConfig(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestOptimize_FallsBackToOriginal(t *testing.T) {
	o := NewOptimizer(0, 0, zap.NewNop())
	garbage := []byte("definitely not an image")

	res := o.Optimize(garbage, "image/webp", Options{})

	assert.Equal(t, garbage, res.Bytes)
	assert.Equal(t, "image/webp", res.ContentType)
	assert.False(t, res.Resized)
}

func TestScaleToWidth(t *testing.T) {
	tests := []struct {
		w, h, maxW   int
		wantW, wantH int
	}{
		{3840, 2160, 1920, 1920, 1080},
		{1000, 3000, 500, 500, 1500},
		{800, 600, 1920, 800, 600},
		{5000, 1, 100, 100, 1},
	}
	for _, tt := range tests {
		w, h := scaleToWidth(tt.w, tt.h, tt.maxW)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}

func TestIsAllowedType(t *testing.T) {
	assert.True(t, IsAllowedType("image/jpeg"))
	assert.True(t, IsAllowedType("IMAGE/JPG"))
	assert.True(t, IsAllowedType("image/webp"))
	assert.True(t, IsAllowedType("image/gif"))
	assert.False(t, IsAllowedType("application/pdf"))
	assert.False(t, IsAllowedType("image/svg+xml"))
}

func TestWithExtension(t *testing.T) {
	assert.Equal(t, "beach.jpg", WithExtension("beach.png", "image/jpeg"))
	assert.Equal(t, "beach.png", WithExtension("beach.png", "image/png"))
	assert.Equal(t, "photo.jpg", WithExtension("photo", "image/pjpeg"))
	assert.Equal(t, "doc.pdf", WithExtension("doc.pdf", "application/pdf"))
}
