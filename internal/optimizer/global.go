package optimizer

// Process-wide default optimizer, kept for callers that configure one
// endpoint at startup and never look back. Prefer constructing an
// Optimizer explicitly when more than one endpoint is in play.
var std = New(DefaultBaseURL)

// SetBaseURL replaces the endpoint used by the package-level BuildURL.
//
// The effect is process-wide and immediate; concurrent callers are not
// isolated — last write wins. This is intentionally not synchronized:
// the base URL is expected to be set once during startup, before any
// request-serving goroutine calls BuildURL. Do not mutate it while
// requests are in flight.
func SetBaseURL(baseURL string) {
	std = New(baseURL)
}

// BuildURL builds an optimizer URL using the process-wide endpoint.
// See Optimizer.BuildURL for the URL shape and guarantees.
func BuildURL(src string, opts Options) string {
	return std.BuildURL(src, opts)
}
