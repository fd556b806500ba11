package imaging

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// pngServer serves a generated PNG and counts requests.
func pngServer(t *testing.T, width, height int) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, createInMemoryImage(width, height, color.RGBA{10, 20, 30, 255})); err != nil {
		t.Fatalf("encode test PNG: %v", err)
	}

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestSourceCache_LoadAndCache(t *testing.T) {
	srv, hits := pngServer(t, 40, 30)
	cache := NewSourceCache(srv.Client())

	img, err := cache.Load(context.Background(), srv.URL+"/a.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", b.Dx(), b.Dy())
	}

	// Second load must come from cache.
	if _, err := cache.Load(context.Background(), srv.URL+"/a.png"); err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("source fetched %d times, want 1", got)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestSourceCache_EvictForcesRefetch(t *testing.T) {
	srv, hits := pngServer(t, 10, 10)
	cache := NewSourceCache(srv.Client())
	url := srv.URL + "/a.png"

	if _, err := cache.Load(context.Background(), url); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(url)
	if _, err := cache.Load(context.Background(), url); err != nil {
		t.Fatalf("Load after Evict failed: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("source fetched %d times, want 2", got)
	}
}

func TestSourceCache_Clear(t *testing.T) {
	srv, _ := pngServer(t, 10, 10)
	cache := NewSourceCache(srv.Client())

	if _, err := cache.Load(context.Background(), srv.URL+"/a.png"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", cache.Len())
	}
}

func TestSourceCache_NotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	cache := NewSourceCache(srv.Client())
	if _, err := cache.Load(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("Load should fail on a 404 source")
	}
}

func TestSourceCache_NotAnImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>definitely not pixels</html>"))
	}))
	t.Cleanup(srv.Close)

	cache := NewSourceCache(srv.Client())
	if _, err := cache.Load(context.Background(), srv.URL+"/page.html"); err == nil {
		t.Error("Load should fail on undecodable content")
	}
}

func TestSourceCache_ContextCancelled(t *testing.T) {
	srv, _ := pngServer(t, 10, 10)
	cache := NewSourceCache(srv.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := cache.Load(ctx, srv.URL+"/a.png"); err == nil {
		t.Error("Load should fail with a cancelled context")
	}
}
