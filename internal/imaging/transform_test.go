package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/storekit/imageview/internal/optimizer"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestTransform_ResizeWidth(t *testing.T) {
	img := createPatternImage(400, 200)

	result, err := Transform(img, optimizer.Options{Width: 200})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if result.Width != 200 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 200x100", result.Width, result.Height)
	}
	if result.ContentType != "image/jpeg" {
		t.Errorf("ContentType: got %s, want image/jpeg", result.ContentType)
	}
	if result.SizeBytes != len(result.Data) {
		t.Errorf("SizeBytes %d does not match data length %d", result.SizeBytes, len(result.Data))
	}
	if result.ETag == "" {
		t.Error("ETag must be set")
	}
}

func TestTransform_NeverUpscales(t *testing.T) {
	img := createInMemoryImage(100, 50, color.RGBA{200, 10, 10, 255})

	result, err := Transform(img, optimizer.Options{Width: 500, Height: 500})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if result.Width != 100 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want source 100x50", result.Width, result.Height)
	}
}

func TestTransform_WebP(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := Transform(img, optimizer.Options{Width: 50, Format: optimizer.FormatWebP})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if result.ContentType != "image/webp" {
		t.Errorf("ContentType: got %s, want image/webp", result.ContentType)
	}
	// RIFF container magic.
	if !bytes.HasPrefix(result.Data, []byte("RIFF")) {
		t.Error("output is not a RIFF/WebP container")
	}
}

func TestTransform_QualityDefaulted(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name    string
		quality int
	}{
		{"zero", 0},
		{"negative", -3},
		{"above range", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Transform(img, optimizer.Options{Width: 50, Quality: tt.quality})
			if err != nil {
				t.Fatalf("Transform failed for quality %d: %v", tt.quality, err)
			}
			if len(result.Data) == 0 {
				t.Error("empty output")
			}
		})
	}
}

func TestTransform_NoOptionsKeepsSize(t *testing.T) {
	img := createPatternImage(120, 80)

	result, err := Transform(img, optimizer.Options{})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if result.Width != 120 || result.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 120x80", result.Width, result.Height)
	}
}

func TestTransform_DeterministicETag(t *testing.T) {
	img := createPatternImage(100, 100)
	opts := optimizer.Options{Width: 50, Quality: 70}

	first, err := Transform(img, opts)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	second, err := Transform(img, opts)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if first.ETag != second.ETag {
		t.Errorf("ETag not stable: %s vs %s", first.ETag, second.ETag)
	}
}

func TestTransform_NilImage(t *testing.T) {
	if _, err := Transform(nil, optimizer.Options{}); err == nil {
		t.Error("Transform should fail for a nil image")
	}
}
