package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxWidth = 1920
	DefaultQuality  = 80
)

type Format string

const (
	FormatAuto Format = ""
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

type Options struct {
	Width   int // 0 means the optimizer default, applied only when the image is wider
	Quality int
	Format  Format
}

type Result struct {
	Bytes       []byte
	ContentType string
	Resized     bool
}

type Optimizer struct {
	maxWidth int
	quality  int
	log      *zap.Logger
}

func NewOptimizer(maxWidth, quality int, log *zap.Logger) *Optimizer {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Optimizer{
		maxWidth: maxWidth,
		quality:  quality,
		log:      log.With(zap.String("component", "imaging")),
	}
}

// Optimize never fails: on any decode/encode error the original bytes come back untouched.
func (o *Optimizer) Optimize(data []byte, contentType string, opts Options) Result {
	out, err := o.optimize(data, opts)
	if err != nil {
		o.log.Warn("Image optimization skipped, keeping original",
			zap.Error(err),
			zap.String("content_type", contentType),
			zap.Int("size", len(data)),
		)
		return Result{Bytes: data, ContentType: contentType}
	}
	return out
}

func (o *Optimizer) optimize(data []byte, opts Options) (Result, error) {
	src, srcFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("decode image: %w", err)
	}

	width := opts.Width
	if width <= 0 {
		width = o.maxWidth
	}
	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = o.quality
	}

	img := src
	resized := false
	if b := src.Bounds(); b.Dx() > width {
		w, h := scaleToWidth(b.Dx(), b.Dy(), width)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
		resized = true
	}

	format := opts.Format
	if format == FormatAuto {
		format = FormatJPEG
		if srcFormat == "png" {
			format = FormatPNG
		}
	}

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return Result{}, fmt.Errorf("encode png: %w", err)
		}
		return Result{Bytes: buf.Bytes(), ContentType: "image/png", Resized: resized}, nil
	case FormatJPEG:
		if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: quality}); err != nil {
			return Result{}, fmt.Errorf("encode jpeg: %w", err)
		}
		return Result{Bytes: buf.Bytes(), ContentType: "image/jpeg", Resized: resized}, nil
	default:
		return Result{}, fmt.Errorf("unsupported output format %q", format)
	}
}

// scaleToWidth keeps the aspect ratio and never enlarges
func scaleToWidth(width, height, maxWidth int) (int, int) {
	if width <= maxWidth {
		return width, height
	}
	h := int(math.Round(float64(height) * float64(maxWidth) / float64(width)))
	if h < 1 {
		h = 1
	}
	return maxWidth, h
}

// flatten paints transparent pixels on white, jpeg has no alpha
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// ContentTypeFor maps an extension or sniffed type to the canonical image MIME
func ContentTypeFor(value string) string {
	ct := strings.ToLower(strings.TrimSpace(value))
	switch ct {
	case "image/jpg", "image/pjpeg":
		return "image/jpeg"
	}
	return ct
}

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsAllowedType reports whether uploads of this MIME type are accepted
func IsAllowedType(contentType string) bool {
	return allowedTypes[ContentTypeFor(contentType)]
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// WithExtension swaps the extension of fileName so it matches contentType
func WithExtension(fileName, contentType string) string {
	ext, ok := extensions[ContentTypeFor(contentType)]
	if !ok {
		return fileName
	}
	if current := path.Ext(fileName); current != "" {
		fileName = strings.TrimSuffix(fileName, current)
	}
	return fileName + ext
}
