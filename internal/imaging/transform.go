package imaging

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/storekit/imageview/internal/optimizer"
)

const (
	// DefaultQuality is the encoding quality used when the request
	// carries none.
	DefaultQuality = 85

	// MaxWidth and MaxHeight cap requested dimensions. Requests beyond
	// the cap are clamped, not rejected.
	MaxWidth  = 2048
	MaxHeight = 2048
)

// TransformResult contains one transformed image ready for serving.
type TransformResult struct {
	Data        []byte `json:"-"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	SizeBytes   int    `json:"size_bytes"`

	// ETag is a content hash for HTTP conditional requests.
	ETag string `json:"etag"`
}

// Transform resizes and re-encodes an image per the given options — the
// serving half of the URL convention the optimizer package generates.
//
// Width and height bound the output while preserving aspect ratio; the
// image is never upscaled. Zero width and height keep the source size.
// The format option selects WebP or JPEG output; unset means JPEG.
// Out-of-range values are clamped (dimensions) or defaulted (quality),
// mirroring the garbage-in-tolerant contract of the URL side.
func Transform(img image.Image, opts optimizer.Options) (*TransformResult, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	w := clamp(opts.Width, srcW, MaxWidth)
	h := clamp(opts.Height, srcH, MaxHeight)

	out := img
	if w < srcW || h < srcH {
		// Fit preserves aspect ratio within the bounding box.
		out = imaging.Fit(img, w, h, imaging.Lanczos)
	}

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	var buf bytes.Buffer
	var contentType string
	switch opts.Format {
	case optimizer.FormatWebP:
		if err := webp.Encode(&buf, out, &webp.Options{Quality: float32(quality)}); err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
		contentType = "image/webp"
	default:
		if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
		contentType = "image/jpeg"
	}

	data := buf.Bytes()
	sum := sha256.Sum256(data)

	outBounds := out.Bounds()
	return &TransformResult{
		Data:        data,
		ContentType: contentType,
		Width:       outBounds.Dx(),
		Height:      outBounds.Dy(),
		SizeBytes:   len(data),
		ETag:        hex.EncodeToString(sum[:16]),
	}, nil
}

// clamp resolves a requested dimension against the source size and the
// hard cap. Zero requests the source size.
func clamp(requested, src, max int) int {
	if requested <= 0 || requested > src {
		requested = src
	}
	if requested > max {
		requested = max
	}
	return requested
}
