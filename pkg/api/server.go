// Package api exposes the link registry over HTTP.
//
// Routes:
//
//	GET    /health
//	POST   /api/v1/codes                 create a link record
//	GET    /api/v1/codes                 list records, most recent first
//	DELETE /api/v1/codes                 clear all records
//	DELETE /api/v1/codes/{id}            delete one record
//	GET    /api/v1/codes/{id}/download   branded PNG
//	GET    /api/v1/codes/{id}/preview    redirect to the deep link
//	GET    /api/v1/codes/{id}/qr         redirect to the preview raster
//
// JSON responses use the envelope {"success", "data", "error"}.
package api

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/menulink/pkg/export"
	"github.com/matzehuels/menulink/pkg/link"
	"github.com/matzehuels/menulink/pkg/registry"
	"github.com/matzehuels/menulink/pkg/restaurant"
)

// Previewer builds the URL of an on-screen QR raster.
type Previewer interface {
	PreviewURL(data string) string
}

// Deps are the collaborators the server needs.
type Deps struct {
	Encoder    *link.Encoder
	Registry   *registry.Registry
	Exporter   *export.Exporter
	Previewer  Previewer
	Restaurant restaurant.Context
	Catalog    *restaurant.Catalog
	Logger     *log.Logger
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	Deps
	router *chi.Mux
}

// NewServer creates a server with all routes configured.
func NewServer(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Registry == nil {
		d.Registry = registry.New()
	}
	if d.Catalog == nil {
		d.Catalog = &restaurant.Catalog{}
	}
	s := &Server{Deps: d, router: chi.NewRouter()}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/codes", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Get("/", s.handleList)
			r.Delete("/", s.handleClear)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Delete("/", s.handleDelete)
				r.Get("/download", s.handleDownload)
				r.Get("/preview", s.handlePreview)
				r.Get("/qr", s.handleQR)
			})
		})
	})
}

// requestLogger logs each request through the charm logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
