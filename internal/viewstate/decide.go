package viewstate

import (
	"github.com/storekit/imageview/internal/optimizer"
)

// DefaultLazyOffset is how many pixels inside the viewport an element must
// be before a lazy image starts loading.
const DefaultLazyOffset = 100

// Props are the per-instance parameters of an image view. They do not
// change in response to events; only State does.
type Props struct {
	// Src is the primary image source URL. Empty means nothing to render.
	Src string

	// NotFoundSrc is the placeholder substituted once the primary source
	// has failed. Used verbatim, never passed through the optimizer.
	NotFoundSrc string

	// Alt is the alternative text for the image element.
	Alt string

	// AspectRatio is the height/width ratio as a percentage (e.g. 50 for
	// a 2:1 image). When positive, the container reserves space with a
	// padding box and contain-fit is forced on.
	AspectRatio float64

	// Quality overrides Optimize.Quality when set.
	Quality int

	// Contain requests contain-fit (letterboxed) layout.
	Contain bool

	// Fill requests stretch-to-container layout.
	Fill bool

	// Lazy defers loading until the element is near the viewport.
	Lazy bool

	// LazyOffset is the required distance inside the viewport, in pixels.
	// Zero means DefaultLazyOffset.
	LazyOffset int

	// AMP selects AMP markup, whose loading the AMP runtime manages.
	AMP bool

	// Optimize carries the transformation hints for the optimizer URL.
	Optimize optimizer.Options

	// Width and Height are the intrinsic dimensions announced on the
	// element, required by AMP intrinsic layout.
	Width  int
	Height int
}

// Layout is the layout hint handed to the markup layer.
type Layout string

const (
	// LayoutFill stretches the image over its positioned container.
	LayoutFill Layout = "fill"

	// LayoutIntrinsic sizes the element from its intrinsic dimensions.
	LayoutIntrinsic Layout = "intrinsic"
)

// Decision is the full rendering decision for one frame: which URL to
// present, in which layout, and whether visibility observation should be
// running. It is a pure function of (State, Props); Decide has no side
// effects and may be called on every render.
type Decision struct {
	// URL is the effective image URL, already passed through the
	// optimizer when the primary source is in play. Empty means there is
	// nothing to show.
	URL string

	// ShowImage reports whether the image element itself belongs in the
	// tree. False while a lazy instance is still pending (the container
	// still renders and reserves space).
	ShowImage bool

	// UsingFallback reports that URL carries NotFoundSrc.
	UsingFallback bool

	// Contain and Fill are the effective fit flags; Contain is forced on
	// by a positive AspectRatio.
	Contain bool
	Fill    bool

	// Layout is the AMP layout hint. Meaningful only when Props.AMP.
	Layout Layout

	// Observe reports whether the visibility observer should be active,
	// and Margin is its symmetric trigger margin in pixels (negative:
	// the element must be that far inside the viewport).
	Observe bool
	Margin  int
}

// Decide computes the rendering decision for the current state.
//
// The primary URL is optimized with Props.Optimize, with Props.Quality
// overriding the quality hint. Once PrimaryNotFound is latched and a
// NotFoundSrc is configured, the fallback replaces it verbatim — the
// fallback is a local, already-sized asset and does not take the
// optimizer detour.
//
// A nil opt uses the process-wide optimizer endpoint, so views that never
// configure their own pick up SetBaseURL changes on the next render.
func Decide(s State, p Props, opt *optimizer.Optimizer) Decision {
	d := Decision{
		Contain: p.Contain || p.AspectRatio > 0,
		Fill:    p.Fill,
	}

	buildURL := optimizer.BuildURL
	if opt != nil {
		buildURL = opt.BuildURL
	}

	opts := p.Optimize
	if p.Quality != 0 {
		opts.Quality = p.Quality
	}
	if p.Src != "" {
		d.URL = buildURL(p.Src, opts)
	}
	if s.PrimaryNotFound && p.NotFoundSrc != "" {
		d.URL = p.NotFoundSrc
		d.UsingFallback = true
	}

	if p.AMP {
		// The AMP runtime does its own lazy loading; the element is
		// always present and never observed.
		d.ShowImage = d.URL != ""
		if d.Contain || p.Fill || p.AspectRatio > 0 {
			d.Layout = LayoutFill
		} else {
			d.Layout = LayoutIntrinsic
		}
		return d
	}

	d.ShowImage = s.Loaded && d.URL != ""
	if p.Lazy {
		d.Observe = !s.Loaded
		offset := p.LazyOffset
		if offset == 0 {
			offset = DefaultLazyOffset
		}
		d.Margin = -offset
	}
	return d
}
