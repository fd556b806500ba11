package optimizer

import (
	"net/url"
	"strconv"
	"strings"
)

// Format identifies an output format understood by the optimizer endpoint.
type Format string

const (
	FormatWebP Format = "webp"
	FormatJPEG Format = "jpeg"
)

// DefaultBaseURL is the optimizer endpoint used until SetBaseURL is called.
const DefaultBaseURL = "https://images.storekit.dev/optimize"

// Options describes the transformation requested from the optimizer endpoint.
//
// Zero values mean "not requested" and are omitted from the generated URL.
// Values are not validated here; whatever is set is serialized as-is and
// left to the endpoint to reject or ignore.
type Options struct {
	// Quality is the encoding quality (1-100) passed to the endpoint.
	Quality int `json:"quality,omitempty"`

	// Width is the target width in pixels.
	Width int `json:"width,omitempty"`

	// Height is the target height in pixels.
	Height int `json:"height,omitempty"`

	// Format is the requested output format. On the wire this is carried
	// by the legacy "fmt" parameter, not "format".
	Format Format `json:"format,omitempty"`
}

// isZero reports whether no transformation was requested.
func (o Options) isZero() bool {
	return o.Quality == 0 && o.Width == 0 && o.Height == 0 && o.Format == ""
}

// Optimizer builds optimizer-endpoint URLs against a fixed base URL.
//
// The base URL is injected at construction so independent tenants (and
// parallel tests) can carry different endpoints. The zero value uses
// DefaultBaseURL.
type Optimizer struct {
	baseURL string
}

// New creates an Optimizer targeting the given endpoint base URL.
// The URL is used verbatim; no validation or normalization is performed.
func New(baseURL string) *Optimizer {
	return &Optimizer{baseURL: baseURL}
}

// BuildURL maps a source image URL plus transformation options to an
// optimizer-endpoint URL.
//
// When opts requests nothing, src is returned unchanged — images that need
// no transformation skip the optimizer round-trip entirely. Otherwise the
// result has the form:
//
//	{base}/?quality=..&width=..&height=..&fmt=..&img={escaped src}
//
// with unset options omitted. The "img" parameter always carries src and
// is always last; parameter order is fixed so a given input produces a
// byte-identical URL on every call (cache keys and golden tests rely on
// this). The Format option is serialized under the key "fmt" — the public
// option name and the wire name differ for compatibility with the legacy
// query scheme.
//
// BuildURL performs no I/O, never fails, and never modifies opts.
func (o *Optimizer) BuildURL(src string, opts Options) string {
	if opts.isZero() {
		return src
	}

	base := o.baseURL
	if base == "" {
		base = DefaultBaseURL
	}

	var q strings.Builder
	addInt := func(key string, v int) {
		if v == 0 {
			return
		}
		if q.Len() > 0 {
			q.WriteByte('&')
		}
		q.WriteString(key)
		q.WriteByte('=')
		q.WriteString(strconv.Itoa(v))
	}

	addInt("quality", opts.Quality)
	addInt("width", opts.Width)
	addInt("height", opts.Height)
	if opts.Format != "" {
		if q.Len() > 0 {
			q.WriteByte('&')
		}
		q.WriteString("fmt=")
		q.WriteString(url.QueryEscape(string(opts.Format)))
	}
	if q.Len() > 0 {
		q.WriteByte('&')
	}
	q.WriteString("img=")
	q.WriteString(url.QueryEscape(src))

	return base + "/?" + q.String()
}
