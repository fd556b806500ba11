// Package imageview renders adaptively-optimized, lazily-loaded image
// elements for storefront pages.
//
// The package wraps three concerns: building CDN-optimizer URLs from a
// source URL plus size/quality/format hints, deferring image loading
// until the element is near the viewport, and falling back to a
// placeholder once the primary source is known broken — with layout
// modes (contain, fill, fixed aspect ratio) that avoid layout shift.
//
// Typical use:
//
//	imageview.SetImageOptimizer("https://images.shop.example/optimize")
//
//	v := imageview.New(imageview.Props{
//		Src:         product.ImageURL,
//		NotFoundSrc: "/assets/not-found.png",
//		AspectRatio: 75,
//		Lazy:        true,
//		Optimize:    imageview.Options{Width: 640, Format: imageview.FormatWebP},
//	}, imageview.Config{})
//
//	markup, _ := v.Render()
//
// Host events (mount check, load errors, visibility changes) are fed
// through the View's Handle methods; Render reflects the current state.
// See the internal packages for the state machine and wire conventions.
package imageview

import (
	"github.com/storekit/imageview/internal/optimizer"
	"github.com/storekit/imageview/internal/render"
	"github.com/storekit/imageview/internal/view"
	"github.com/storekit/imageview/internal/viewstate"
)

// Options are the optimizer transformation hints.
type Options = optimizer.Options

// Format is an optimizer output format.
type Format = optimizer.Format

// Supported output formats.
const (
	FormatWebP = optimizer.FormatWebP
	FormatJPEG = optimizer.FormatJPEG
)

// Props are the per-instance parameters of an image view.
type Props = viewstate.Props

// Theme names the style classes attached to the markup.
type Theme = render.Theme

// Config carries collaborators shared across views.
type Config = view.Config

// View is one image instance.
type View = view.View

// Optimizer builds optimizer URLs against an injected endpoint, for
// applications that need per-tenant endpoints instead of the process-wide
// one.
type Optimizer = optimizer.Optimizer

// New creates a view for the given props.
func New(props Props, cfg Config) *View {
	return view.New(props, cfg)
}

// NewOptimizer creates an Optimizer targeting the given endpoint.
func NewOptimizer(baseURL string) *Optimizer {
	return optimizer.New(baseURL)
}

// SetImageOptimizer replaces the process-wide optimizer endpoint used by
// views without an explicit Optimizer. Call it once at startup; the
// global is not synchronized against concurrent renders.
func SetImageOptimizer(baseURL string) {
	optimizer.SetBaseURL(baseURL)
}

// BuildOptimizedURL builds an optimizer URL with the process-wide
// endpoint. An empty Options returns src unchanged.
func BuildOptimizedURL(src string, opts Options) string {
	return optimizer.BuildURL(src, opts)
}
