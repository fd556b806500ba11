package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"sync"
	"time"

	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultMaxSourceBytes caps how much of a source response is read (8MB).
// Catalog images beyond this are rejected rather than buffered.
const DefaultMaxSourceBytes = 8 * 1024 * 1024

// SourceCache fetches and decodes source images, caching the decoded
// result keyed by source URL so repeated transformations of the same
// catalog image skip the network and the decode.
//
// SourceCache is safe for concurrent use. Decoded images stay cached
// until Evict or Clear; long-running services should size traffic against
// memory and clear periodically.
type SourceCache struct {
	client   *http.Client
	maxBytes int64

	mu     sync.RWMutex
	images map[string]image.Image
}

// NewSourceCache creates a cache fetching through client. A nil client
// uses a default with a 15s timeout.
func NewSourceCache(client *http.Client) *SourceCache {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &SourceCache{
		client:   client,
		maxBytes: DefaultMaxSourceBytes,
		images:   make(map[string]image.Image),
	}
}

// Load returns the decoded image for srcURL, fetching it on a cache miss.
//
// Supported formats are PNG, JPEG, GIF, and WebP. The image is cached
// using the exact URL string; URLs differing only in parameter order are
// separate entries.
func (c *SourceCache) Load(ctx context.Context, srcURL string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[srcURL]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build source request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch source image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch source image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read source image: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("source image exceeds %d bytes", c.maxBytes)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode source image: %w", err)
	}

	c.mu.Lock()
	c.images[srcURL] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes one URL from the cache. Unknown URLs are ignored.
func (c *SourceCache) Evict(srcURL string) {
	c.mu.Lock()
	delete(c.images, srcURL)
	c.mu.Unlock()
}

// Clear removes all cached images, freeing the associated memory.
func (c *SourceCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Len returns the number of cached sources.
func (c *SourceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}
