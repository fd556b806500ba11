package viewstate

import (
	"strings"
	"testing"

	"github.com/storekit/imageview/internal/optimizer"
)

func testOptimizer() *optimizer.Optimizer {
	return optimizer.New("https://opt.example/img")
}

func TestDecide_OptimizesPrimarySrc(t *testing.T) {
	p := Props{
		Src:      "https://x/a.jpg",
		Quality:  80,
		Optimize: optimizer.Options{Width: 200},
	}

	d := Decide(State{Loaded: true}, p, testOptimizer())
	want := "https://opt.example/img/?quality=80&width=200&img=https%3A%2F%2Fx%2Fa.jpg"
	if d.URL != want {
		t.Errorf("URL = %q, want %q", d.URL, want)
	}
	if !d.ShowImage {
		t.Error("loaded state must show the image")
	}
}

func TestDecide_QualityOverridesOptimizeQuality(t *testing.T) {
	p := Props{
		Src:      "https://x/a.jpg",
		Quality:  90,
		Optimize: optimizer.Options{Quality: 10},
	}

	d := Decide(State{Loaded: true}, p, testOptimizer())
	if !strings.Contains(d.URL, "quality=90") {
		t.Errorf("URL %q must carry the prop quality", d.URL)
	}
}

func TestDecide_NoOptionsPassesSrcThrough(t *testing.T) {
	p := Props{Src: "https://x/a.jpg"}

	d := Decide(State{Loaded: true}, p, testOptimizer())
	if d.URL != "https://x/a.jpg" {
		t.Errorf("URL = %q, want untouched src", d.URL)
	}
}

func TestDecide_FallbackBypassesOptimizer(t *testing.T) {
	p := Props{
		Src:         "https://x/a.jpg",
		NotFoundSrc: "/assets/not-found.png",
		Optimize:    optimizer.Options{Width: 200},
	}

	d := Decide(State{Loaded: true, PrimaryNotFound: true}, p, testOptimizer())
	if d.URL != "/assets/not-found.png" {
		t.Errorf("URL = %q, want the raw fallback src", d.URL)
	}
	if !d.UsingFallback {
		t.Error("UsingFallback must be set")
	}
}

func TestDecide_NotFoundWithoutFallbackKeepsPrimary(t *testing.T) {
	p := Props{Src: "https://x/a.jpg"}

	d := Decide(State{Loaded: true, PrimaryNotFound: true}, p, testOptimizer())
	if d.URL != "https://x/a.jpg" {
		t.Errorf("URL = %q, want primary src when no fallback configured", d.URL)
	}
	if d.UsingFallback {
		t.Error("UsingFallback must stay false without a NotFoundSrc")
	}
}

func TestDecide_EmptySrcRendersNothing(t *testing.T) {
	d := Decide(State{Loaded: true}, Props{}, testOptimizer())
	if d.URL != "" || d.ShowImage {
		t.Errorf("empty src: got URL=%q ShowImage=%v, want nothing", d.URL, d.ShowImage)
	}
}

func TestDecide_AspectRatioForcesContain(t *testing.T) {
	p := Props{Src: "https://x/a.jpg", AspectRatio: 50, Contain: false}

	d := Decide(State{Loaded: true}, p, testOptimizer())
	if !d.Contain {
		t.Error("AspectRatio must force Contain on")
	}
}

func TestDecide_AMPLayout(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  Layout
	}{
		{"fill prop", Props{Src: "https://x/a.jpg", AMP: true, Fill: true}, LayoutFill},
		{"contain prop", Props{Src: "https://x/a.jpg", AMP: true, Contain: true}, LayoutFill},
		{"aspect ratio", Props{Src: "https://x/a.jpg", AMP: true, AspectRatio: 50}, LayoutFill},
		{"plain", Props{Src: "https://x/a.jpg", AMP: true, Width: 100, Height: 50}, LayoutIntrinsic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(Initial(false, true), tt.props, testOptimizer())
			if d.Layout != tt.want {
				t.Errorf("Layout = %q, want %q", d.Layout, tt.want)
			}
		})
	}
}

func TestDecide_AMPNeverObserves(t *testing.T) {
	p := Props{Src: "https://x/a.jpg", AMP: true, Lazy: true}

	d := Decide(Initial(true, true), p, testOptimizer())
	if d.Observe {
		t.Error("AMP mode must not request observation")
	}
	if !d.ShowImage {
		t.Error("AMP element must always be present")
	}
}

func TestDecide_LazyObservation(t *testing.T) {
	p := Props{Src: "https://x/a.jpg", Lazy: true}

	d := Decide(Initial(true, false), p, testOptimizer())
	if d.ShowImage {
		t.Error("pending lazy image must not be in the tree")
	}
	if !d.Observe {
		t.Error("pending lazy image must be observed")
	}
	if d.Margin != -DefaultLazyOffset {
		t.Errorf("Margin = %d, want %d", d.Margin, -DefaultLazyOffset)
	}

	// Once loaded, observation stops.
	d = Decide(State{Loaded: true}, p, testOptimizer())
	if d.Observe {
		t.Error("observation must stop once loaded")
	}
	if !d.ShowImage {
		t.Error("loaded lazy image must be in the tree")
	}
}

func TestDecide_CustomLazyOffset(t *testing.T) {
	p := Props{Src: "https://x/a.jpg", Lazy: true, LazyOffset: 250}

	d := Decide(Initial(true, false), p, testOptimizer())
	if d.Margin != -250 {
		t.Errorf("Margin = %d, want -250", d.Margin)
	}
}
