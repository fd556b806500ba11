// Package imaging implements the serving half of the storefront image
// pipeline: fetching source images, transforming them per the optimizer
// URL convention, and generating loading placeholders.
//
// The optimizer package generates URLs of the form
// {base}/?width=..&quality=..&fmt=..&img=..; this package performs the
// work those parameters describe. It is consumed by the reference
// optimizer HTTP service and never by the rendering core, which only
// builds URLs.
//
// # Pipeline
//
//   - SourceCache fetches and decodes source images (PNG, JPEG, GIF,
//     WebP), caching decoded results by URL.
//   - Transform resizes (aspect-preserving, never upscaling) and
//     re-encodes as JPEG or WebP.
//   - DominantColor and BlurPlaceholder produce the placeholder assets a
//     storefront shows in an image slot before the real image loads.
//
// # Tolerance
//
// Mirroring the URL side's garbage-in contract, Transform clamps
// out-of-range dimensions and defaults nonsensical quality values instead
// of rejecting requests. Errors are reserved for real failures: fetch,
// decode, encode.
//
// # Thread Safety
//
// SourceCache is safe for concurrent use. Transform and the placeholder
// functions are stateless and safe to call concurrently on different
// images.
package imaging
