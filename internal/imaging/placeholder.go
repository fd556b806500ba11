package imaging

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"sort"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorPlaceholder is a solid-color stand-in for an image that has not
// loaded yet: the storefront paints the slot with the dominant color so
// the page does not flash white while the real image arrives.
type ColorPlaceholder struct {
	// Hex is the dominant color as "#rrggbb", ready for a CSS background.
	Hex string `json:"hex"`

	// Percentage of pixels (after quantization) carrying this color.
	Percentage float64 `json:"percentage"`

	// Luminance is the perceptual lightness (0-1, CIE Lab L*), letting
	// the client pick readable overlay text for the slot.
	Luminance float64 `json:"luminance"`
}

// DominantColor extracts the most frequent color of an image.
//
// Colors are quantized to 16-unit buckets per channel so near-identical
// shades count together, then ranked by frequency. Fully transparent
// pixels are skipped; an image with no opaque pixels yields black.
func DominantColor(img image.Image) *ColorPlaceholder {
	type bucket struct {
		r, g, b uint8
	}

	bounds := img.Bounds()
	counts := make(map[bucket]int)
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			counts[bucket{
				r: uint8(r>>8) / 16 * 16,
				g: uint8(g>>8) / 16 * 16,
				b: uint8(b>>8) / 16 * 16,
			}]++
			total++
		}
	}

	if total == 0 {
		return &ColorPlaceholder{Hex: "#000000"}
	}

	buckets := make([]bucket, 0, len(counts))
	for bk := range counts {
		buckets = append(buckets, bk)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if counts[buckets[i]] != counts[buckets[j]] {
			return counts[buckets[i]] > counts[buckets[j]]
		}
		// Stable rank for equal frequencies.
		a, b := buckets[i], buckets[j]
		if a.r != b.r {
			return a.r < b.r
		}
		if a.g != b.g {
			return a.g < b.g
		}
		return a.b < b.b
	})

	top := buckets[0]
	c := colorful.Color{
		R: float64(top.r) / 255,
		G: float64(top.g) / 255,
		B: float64(top.b) / 255,
	}
	l, _, _ := c.Lab()

	return &ColorPlaceholder{
		Hex:        c.Hex(),
		Percentage: float64(counts[top]) / float64(total) * 100,
		Luminance:  l,
	}
}

// DefaultBlurWidth is the LQIP width when the request carries none. The
// placeholder is meant to be stretched by CSS, so it stays tiny.
const DefaultBlurWidth = 32

// BlurPlaceholder produces a low-quality blurred preview of an image: a
// few hundred bytes of JPEG the storefront can inline as the slot
// background until the real image loads.
//
// width bounds the preview width (aspect ratio preserved, never
// upscaled); zero means DefaultBlurWidth.
func BlurPlaceholder(img image.Image, width int) (*TransformResult, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	if width <= 0 {
		width = DefaultBlurWidth
	}
	if src := img.Bounds().Dx(); width > src {
		width = src
	}

	small := imaging.Resize(img, width, 0, imaging.Lanczos)
	blurred := blur.Gaussian(small, float64(width)/16+1)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, blurred, &jpeg.Options{Quality: 40}); err != nil {
		return nil, fmt.Errorf("encode blur placeholder: %w", err)
	}

	data := buf.Bytes()
	sum := sha256.Sum256(data)
	bounds := blurred.Bounds()
	return &TransformResult{
		Data:        data,
		ContentType: "image/jpeg",
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		SizeBytes:   len(data),
		ETag:        hex.EncodeToString(sum[:16]),
	}, nil
}
