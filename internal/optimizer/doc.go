// Package optimizer builds CDN image-optimization URLs.
//
// A storefront page never serves raw catalog images; each <img> src points
// at an optimizer endpoint that resizes, re-encodes, and caches the source
// image. This package owns the URL half of that contract: mapping a source
// URL plus size/quality/format hints onto the endpoint's GET-parameter
// convention.
//
// # Wire Convention
//
// The endpoint accepts standard URL-encoded query parameters:
//
//	quality  encoding quality, 1-100
//	width    target width in pixels
//	height   target height in pixels
//	fmt      output format ("webp" or "jpeg")
//	img      the original source URL, escaped
//
// Note the format parameter is named "fmt" on the wire. The public Options
// field is Format; the shorter wire name predates this package and is kept
// for compatibility with the deployed endpoint fleet.
//
// # Fast Path
//
// An empty Options means the image needs no transformation, and BuildURL
// returns the source URL untouched. Optimizing such images would only add
// a pointless round-trip through the endpoint.
//
// # Concurrency
//
// Optimizer values are immutable and safe for concurrent use. The
// package-level SetBaseURL/BuildURL pair shares one unsynchronized global;
// configure it at startup only.
package optimizer
