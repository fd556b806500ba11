package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storekit/imageview/internal/imaging"
)

// Config carries the service configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8280".
	Addr string

	// FetchTimeout bounds one source-image fetch. Zero means 15s.
	FetchTimeout time.Duration

	// CacheControl is the Cache-Control header sent with transformed
	// images. Zero means DefaultCacheControl.
	CacheControl string
}

// DefaultCacheControl marks transformed images as long-lived: the URL
// encodes the full transformation, so a URL's content never changes.
const DefaultCacheControl = "public, max-age=43200, immutable"

// Server is the reference optimizer endpoint: it serves the GET-parameter
// convention the optimizer package generates URLs for.
type Server struct {
	echo  *echo.Echo
	cache *imaging.SourceCache
	cfg   Config
	log   *slog.Logger
}

// New creates a Server. A nil logger uses slog.Default.
func New(cfg Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	if cfg.CacheControl == "" {
		cfg.CacheControl = DefaultCacheControl
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:  e,
		cache: imaging.NewSourceCache(&http.Client{Timeout: cfg.FetchTimeout}),
		cfg:   cfg,
		log:   log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/", s.handleOptimize)
	s.echo.GET("/placeholder/color", s.handlePlaceholderColor)
	s.echo.GET("/placeholder/blur", s.handlePlaceholderBlur)
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("optimizer service listening", "addr", s.cfg.Addr)
	return s.echo.Start(s.cfg.Addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the HTTP handler for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
