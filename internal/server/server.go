// Package server exposes the browser UI: an upload form and the
// synchronous translate-and-play endpoint.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nguyentantai21042004/subtitle-flow/internal/config"
	"github.com/nguyentantai21042004/subtitle-flow/internal/logger"
	"github.com/nguyentantai21042004/subtitle-flow/internal/pipeline"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	cfg      *config.Config
	pipeline pipeline.Pipeline
	logger   logger.Logger
	echo     *echo.Echo
}

// New wires routes and middleware. The pipeline is injected so tests
// can run the handlers against a fake.
func New(cfg *config.Config, pipe pipeline.Pipeline, log logger.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		pipeline: pipe,
		logger:   log,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Renderer = newRenderer()

	// Uploaded videos are the whole request body; cap it per config.
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Server.UploadLimitMB)))
	e.Use(middleware.Recover())

	// Request logging through the pipeline logger.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Info(c.Request().Context(), "%s %s -> %d (%s)",
				c.Request().Method, c.Request().URL.Path,
				c.Response().Status, time.Since(start).Round(time.Millisecond))
			return err
		}
	})

	e.GET("/", s.handleIndex)
	e.POST("/translate", s.handleTranslate)

	s.echo = e
	return s
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start(addr string) error {
	err := s.echo.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP lets tests drive the server through httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

type renderer struct {
	templates *template.Template
}

func newRenderer() *renderer {
	return &renderer{
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
