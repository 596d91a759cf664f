// Package server exposes descriptor composition over HTTP.
//
// Routes:
//
//	POST /v1/descriptors/{buildSystem}  compose.Request JSON -> compose.Descriptor JSON
//	GET  /v1/features                   catalog features and the fragment kinds they define
//	GET  /v1/build-systems              supported build systems
//	GET  /healthz                       liveness and build info
//	GET  /metrics                       Prometheus metrics
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/stackforge/pkg/buildinfo"
	"github.com/matzehuels/stackforge/pkg/compose"
	"github.com/matzehuels/stackforge/pkg/compose/buildsystems"
	"github.com/matzehuels/stackforge/pkg/errors"
)

const (
	maxBodyBytes      = 1 << 20
	defaultTimeout    = 60 * time.Second
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Catalog is the feature catalog served by the API.
type Catalog interface {
	compose.Catalog
	Features() []string
}

// Options configures a Server.
type Options struct {
	Catalog  Catalog
	Resolver compose.VersionResolver
	Logger   *log.Logger
	Metrics  *Metrics      // nil disables /metrics
	Timeout  time.Duration // per-composition timeout (default 60s)
}

// Server serves the composition API.
type Server struct {
	opts    Options
	handler http.Handler
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	s := &Server{opts: opts}
	s.handler = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.opts.Metrics.Registry(), promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		r.Get("/features", s.handleFeatures)
		r.Get("/build-systems", s.handleBuildSystems)
		r.Post("/descriptors/{buildSystem}", s.handleCompose)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.opts.Logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.opts.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Get()})
}

type featureInfo struct {
	Name  string   `json:"name"`
	Kinds []string `json:"kinds"`
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	names := s.opts.Catalog.Features()
	out := make([]featureInfo, 0, len(names))
	for _, name := range names {
		frag, _ := s.opts.Catalog.Fragment(name)
		kinds := frag.Kinds()
		if kinds == nil {
			kinds = []string{}
		}
		out = append(out, featureInfo{Name: name, Kinds: kinds})
	}
	writeJSON(w, http.StatusOK, map[string]any{"features": out})
}

func (s *Server) handleBuildSystems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"buildSystems": buildsystems.Names()})
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	composer, err := buildsystems.New(chi.URLParam(r, "buildSystem"), s.opts.Catalog, s.opts.Resolver)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req compose.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidRequest, err, "decode request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.Timeout)
	defer cancel()

	d, err := composer.Compose(ctx, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
