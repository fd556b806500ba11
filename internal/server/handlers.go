package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storekit/imageview/internal/imaging"
	"github.com/storekit/imageview/internal/optimizer"
)

// parseOptions reads the wire parameters into optimizer options. Values
// that do not parse are treated as absent — the URL side passes hints
// through unvalidated, so the serving side tolerates whatever arrives.
func parseOptions(c echo.Context) optimizer.Options {
	atoi := func(key string) int {
		v, err := strconv.Atoi(c.QueryParam(key))
		if err != nil {
			return 0
		}
		return v
	}
	return optimizer.Options{
		Quality: atoi("quality"),
		Width:   atoi("width"),
		Height:  atoi("height"),
		Format:  optimizer.Format(c.QueryParam("fmt")),
	}
}

// handleOptimize serves GET /?img=..&width=..&height=..&quality=..&fmt=..
func (s *Server) handleOptimize(c echo.Context) error {
	start := time.Now()
	src := c.QueryParam("img")
	if src == "" {
		observeRequest("optimize", "bad_request", start, 0)
		return c.String(http.StatusBadRequest, "missing img parameter")
	}

	img, err := s.cache.Load(c.Request().Context(), src)
	if err != nil {
		s.log.Warn("source fetch failed", "src", src, "error", err)
		observeRequest("optimize", "fetch_error", start, 0)
		return c.String(http.StatusBadGateway, "source image unavailable")
	}

	result, err := imaging.Transform(img, parseOptions(c))
	if err != nil {
		s.log.Error("transform failed", "src", src, "error", err)
		observeRequest("optimize", "transform_error", start, 0)
		return c.String(http.StatusInternalServerError, "transform failed")
	}

	observeRequest("optimize", "ok", start, result.SizeBytes)
	return s.serveImage(c, result)
}

// handlePlaceholderColor serves GET /placeholder/color?img=..
func (s *Server) handlePlaceholderColor(c echo.Context) error {
	start := time.Now()
	src := c.QueryParam("img")
	if src == "" {
		observeRequest("placeholder_color", "bad_request", start, 0)
		return c.String(http.StatusBadRequest, "missing img parameter")
	}

	img, err := s.cache.Load(c.Request().Context(), src)
	if err != nil {
		s.log.Warn("source fetch failed", "src", src, "error", err)
		observeRequest("placeholder_color", "fetch_error", start, 0)
		return c.String(http.StatusBadGateway, "source image unavailable")
	}

	observeRequest("placeholder_color", "ok", start, 0)
	c.Response().Header().Set("Cache-Control", s.cfg.CacheControl)
	return c.JSON(http.StatusOK, imaging.DominantColor(img))
}

// handlePlaceholderBlur serves GET /placeholder/blur?img=..&width=..
func (s *Server) handlePlaceholderBlur(c echo.Context) error {
	start := time.Now()
	src := c.QueryParam("img")
	if src == "" {
		observeRequest("placeholder_blur", "bad_request", start, 0)
		return c.String(http.StatusBadRequest, "missing img parameter")
	}

	img, err := s.cache.Load(c.Request().Context(), src)
	if err != nil {
		s.log.Warn("source fetch failed", "src", src, "error", err)
		observeRequest("placeholder_blur", "fetch_error", start, 0)
		return c.String(http.StatusBadGateway, "source image unavailable")
	}

	width, _ := strconv.Atoi(c.QueryParam("width"))
	result, err := imaging.BlurPlaceholder(img, width)
	if err != nil {
		s.log.Error("blur placeholder failed", "src", src, "error", err)
		observeRequest("placeholder_blur", "transform_error", start, 0)
		return c.String(http.StatusInternalServerError, "placeholder failed")
	}

	observeRequest("placeholder_blur", "ok", start, result.SizeBytes)
	return s.serveImage(c, result)
}

// serveImage writes a transform result with caching headers, honoring
// If-None-Match so browsers revisiting a product page skip the bytes.
func (s *Server) serveImage(c echo.Context, result *imaging.TransformResult) error {
	etag := `"` + result.ETag + `"`
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}

	h := c.Response().Header()
	h.Set("Cache-Control", s.cfg.CacheControl)
	h.Set("ETag", etag)
	h.Set("Cross-Origin-Resource-Policy", "cross-origin")

	return c.Blob(http.StatusOK, result.ContentType, result.Data)
}
