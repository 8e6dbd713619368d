// Package server serves the browser tree editor and its JSON API.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/render"
)

// maxUploadBytes bounds tree uploads.
const maxUploadBytes = 10 << 20

// Server exposes an editor over HTTP.
type Server struct {
	editor   *editor.Editor
	renderer render.Renderer
	events   *broadcaster
	logger   *log.Logger

	mode   render.Mode
	format render.Format
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults sets the mode and format used when a request names neither.
func WithDefaults(mode render.Mode, format render.Format) Option {
	return func(s *Server) {
		if mode != "" {
			s.mode = mode
		}
		if format != "" {
			s.format = format
		}
	}
}

// New creates a server for ed that draws diagrams with r.
func New(ed *editor.Editor, r render.Renderer, opts ...Option) *Server {
	s := &Server{
		editor:   ed,
		renderer: r,
		events:   newBroadcaster(),
		logger:   log.New(io.Discard),
		mode:     render.ModeTree,
		format:   render.FormatSVG,
	}
	for _, opt := range opts {
		opt(s)
	}
	ed.Subscribe(s.events)
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Handle("/static/*", staticHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", s.handleTree)
		r.Post("/nodes", s.handleAddNode)
		r.Post("/nodes/{id}/children", s.handleAddChild)
		r.Post("/selection/children", s.handleAddChildToSelected)
		r.Put("/selection", s.handleSelect)
		r.Post("/load", s.handleLoad)
		r.Get("/export", s.handleExport)
		r.Get("/render", s.handleRender)
		r.Get("/layout", s.handleLayout)
		r.Get("/events", s.handleEvents)
	})

	return withSecurityHeaders(r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.events.close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
