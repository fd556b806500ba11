// Package server implements the reference optimizer HTTP service.
//
// The rendering core only builds URLs against an optimizer endpoint; this
// package is a self-hostable implementation of that endpoint, so a
// storefront can run the whole image pipeline from one binary.
//
// # Endpoints
//
//	GET /                    transform a source image
//	GET /placeholder/color   dominant-color placeholder as JSON
//	GET /placeholder/blur    low-quality blurred preview image
//	GET /health              liveness probe
//	GET /metrics             Prometheus metrics
//
// The transform endpoint accepts the wire parameters the optimizer
// package serializes: img (source URL, required), width, height, quality,
// and fmt ("webp" or "jpeg"). Unparsable values are ignored rather than
// rejected, matching the URL side's pass-through contract; only a missing
// img is a client error.
//
// # Caching
//
// A transformed URL is immutable — the transformation is fully encoded in
// the parameters — so responses carry a long-lived Cache-Control header
// and a content ETag, and conditional requests short-circuit to 304.
// Decoded source images are cached in memory per process.
//
// # Failure Mapping
//
// An unreachable or undecodable source maps to 502: from the storefront's
// point of view the image simply fails to load, and the rendering core's
// not-found fallback takes over. Transform failures are 500s.
package server
