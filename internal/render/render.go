// Package render emits the HTML for an image view: the positioned
// container, the aspect-ratio padding box, the <img> itself, and the
// <amp-img> variant for AMP pages.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/storekit/imageview/internal/viewstate"
)

// Theme names the style classes the markup layer attaches. The classes
// are opaque identifiers supplied by the surrounding application's theme
// provider; this package never inspects them.
type Theme struct {
	// Root is the outer positioning container.
	Root string

	// Overlay absolutely fills the container.
	Overlay string

	// Contain letterboxes the image inside the container.
	Contain string

	// Stretch stretches the image over the container.
	Stretch string
}

// DefaultTheme is used when the application supplies no theme of its own.
var DefaultTheme = Theme{
	Root:    "iv-root",
	Overlay: "iv-overlay",
	Contain: "iv-contain",
	Stretch: "iv-stretch",
}

// Renderer emits HTML for an image view decision.
type Renderer struct {
	theme Theme
}

// New creates a Renderer with the given theme. A zero Theme falls back to
// DefaultTheme.
func New(theme Theme) *Renderer {
	if theme == (Theme{}) {
		theme = DefaultTheme
	}
	return &Renderer{theme: theme}
}

// Render produces the markup for one image view frame.
//
// AMP props produce a single <amp-img> whose loading the AMP runtime
// manages. Everything else produces the container markup: the root
// element, the aspect-ratio padding box when one is configured, and the
// <img> itself only when the decision says the element belongs in the
// tree. A decision with no URL and no container to reserve renders to an
// empty string; a missing source is not an error.
func (r *Renderer) Render(d viewstate.Decision, p viewstate.Props) (string, error) {
	var root *html.Node
	if p.AMP {
		if d.URL == "" {
			return "", nil
		}
		root = r.ampImg(d, p)
	} else {
		if d.URL == "" && p.AspectRatio <= 0 {
			return "", nil
		}
		root = r.container(d, p)
	}

	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		return "", fmt.Errorf("render image view: %w", err)
	}
	return b.String(), nil
}

// container builds the non-AMP markup tree.
func (r *Renderer) container(d viewstate.Decision, p viewstate.Props) *html.Node {
	root := element(atom.Div, attr("class", r.theme.Root))
	if d.Observe {
		root.Attr = append(root.Attr,
			html.Attribute{Key: "data-lazy", Val: "true"},
			html.Attribute{Key: "data-lazy-margin", Val: strconv.Itoa(d.Margin)},
		)
	}

	if p.AspectRatio > 0 {
		pad := element(atom.Div,
			attr("style", "padding-top:"+formatRatio(p.AspectRatio)+"%"),
		)
		root.AppendChild(pad)
	}

	if d.ShowImage {
		root.AppendChild(r.img(d, p))
	}
	return root
}

// img builds the inner <img> with the overlay and fit classes.
func (r *Renderer) img(d viewstate.Decision, p viewstate.Props) *html.Node {
	classes := []string{r.theme.Overlay}
	if d.Contain {
		classes = append(classes, r.theme.Contain)
	}
	if d.Fill {
		classes = append(classes, r.theme.Stretch)
	}

	img := element(atom.Img,
		attr("class", strings.Join(classes, " ")),
		attr("src", d.URL),
		attr("alt", p.Alt),
	)
	if p.Width > 0 {
		img.Attr = append(img.Attr, html.Attribute{Key: "width", Val: strconv.Itoa(p.Width)})
	}
	if p.Height > 0 {
		img.Attr = append(img.Attr, html.Attribute{Key: "height", Val: strconv.Itoa(p.Height)})
	}
	return img
}

// ampImg builds the <amp-img> element with its layout hint.
func (r *Renderer) ampImg(d viewstate.Decision, p viewstate.Props) *html.Node {
	node := &html.Node{
		Type: html.ElementNode,
		Data: "amp-img",
		Attr: []html.Attribute{
			{Key: "class", Val: r.theme.Root},
			{Key: "src", Val: d.URL},
			{Key: "layout", Val: string(d.Layout)},
			{Key: "alt", Val: p.Alt},
		},
	}
	if p.Width > 0 {
		node.Attr = append(node.Attr, html.Attribute{Key: "width", Val: strconv.Itoa(p.Width)})
	}
	if p.Height > 0 {
		node.Attr = append(node.Attr, html.Attribute{Key: "height", Val: strconv.Itoa(p.Height)})
	}
	return node
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// formatRatio renders the aspect ratio percentage without trailing zeros,
// so 50.0 becomes "50" and 56.25 stays "56.25".
func formatRatio(ratio float64) string {
	return strconv.FormatFloat(ratio, 'f', -1, 64)
}
