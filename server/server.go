package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/ranking"
	"github.com/poiesic/talentrank/registry"
	"github.com/poiesic/talentrank/tabular"
)

// Service is the application behaviour the HTTP layer delegates to.
type Service interface {
	LoadDataset(ctx context.Context, table *tabular.Table) (registry.ID, error)
	Search(ctx context.Context, id registry.ID, q ranking.Query) ([]core.Candidate, error)
	Evict(id registry.ID) error
	Datasets() []registry.Info
}

const defaultMaxUploadBytes = 32 << 20

// Server routes HTTP requests to a Service.
type Server struct {
	svc            Service
	maxUploadBytes int64
	readTimeout    time.Duration
	writeTimeout   time.Duration
	shutdown       time.Duration
	logger         *slog.Logger
	mux            *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithMaxUploadBytes caps the size of dataset uploads.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithTimeouts sets the HTTP read, write and graceful shutdown timeouts.
// Zero values keep the defaults.
func WithTimeouts(read, write, shutdown time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
		if shutdown > 0 {
			s.shutdown = shutdown
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a server for svc.
func New(svc Service, opts ...Option) (*Server, error) {
	if svc == nil {
		return nil, ErrServiceRequired
	}

	s := &Server{
		svc:            svc,
		maxUploadBytes: defaultMaxUploadBytes,
		readTimeout:    time.Minute,
		writeTimeout:   5 * time.Minute,
		shutdown:       10 * time.Second,
		logger:         slog.Default(),
		mux:            http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "http")

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /datasets", s.handleUpload)
	s.mux.HandleFunc("POST /dataset", s.handleUpload)
	s.mux.HandleFunc("GET /datasets", s.handleList)
	s.mux.HandleFunc("DELETE /datasets/{id}", s.handleEvict)
	s.mux.HandleFunc("POST /search", s.handleSearch)
	return s, nil
}

// Handler returns the root handler with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "elapsed", time.Since(start))
	})
}
