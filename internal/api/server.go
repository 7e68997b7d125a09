package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/atlasdocs/siteatlas/internal/analytics"
	"github.com/atlasdocs/siteatlas/internal/config"
	"github.com/atlasdocs/siteatlas/internal/docs"
	"github.com/atlasdocs/siteatlas/internal/site"
	"github.com/atlasdocs/siteatlas/internal/telemetry"
)

// Server wires HTTP handlers to the page registry and analytics store.
type Server struct {
	router   chi.Router
	registry *site.Registry
	recorder analytics.Recorder
	store    *analytics.FileStore
	idGen    site.IDGenerator
	clock    site.Clock
	cfg      config.Config
	logger   *zap.Logger
	app      docs.AppInfo
}

// NewServer constructs a Server with middleware and routes. The recorder and
// store may be nil when analytics is disabled.
func NewServer(
	registry *site.Registry,
	recorder analytics.Recorder,
	store *analytics.FileStore,
	idGen site.IDGenerator,
	clock site.Clock,
	cfg config.Config,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		registry: registry,
		recorder: recorder,
		store:    store,
		idGen:    idGen,
		clock:    clock,
		cfg:      cfg,
		logger:   logger,
		app: docs.AppInfo{
			Name:        cfg.App.Name,
			Description: cfg.App.Description,
			BaseURL:     strings.TrimSuffix(cfg.App.BaseURL, "/"),
		},
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(telemetry.Middleware)
	r.Use(timeoutMiddleware(30 * time.Second))
	if cfg.RateLimit.Enabled {
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
		r.Use(s.rateLimitMiddleware(limiter))
	}
	r.Use(s.visitMiddleware)

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Handle("/metrics", telemetry.Handler())

	r.Get("/robots.txt", s.robotsTxt)
	r.Get("/sitemap.xml", s.sitemapXML)
	r.Get("/llms.txt", s.siteLLMSText)
	r.Get("/page.json", s.sitePageJSON)
	r.Get("/architecture.txt", s.architectureText)

	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/summary", s.analyticsSummary)
		r.Get("/bots", s.analyticsBots)
		r.Get("/hourly", s.analyticsHourly)
		r.Get("/pages", s.analyticsPages)
	})

	r.Get("/", s.index)
	r.Get("/*", s.pageRoute)

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// visiblePage resolves a path to a registered, non-hidden page.
func (s *Server) visiblePage(path string) (site.Page, bool) {
	page, ok := s.registry.Lookup(path)
	if !ok || s.registry.IsHidden(page.Path) {
		return site.Page{}, false
	}
	return page, true
}

// rootPage returns the registered root page, or a synthetic one describing
// the whole application when no root route exists.
func (s *Server) rootPage() site.Page {
	if page, ok := s.visiblePage("/"); ok {
		return page
	}
	return site.Page{Path: "/", Name: s.app.Name, Description: s.app.Description}
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec))
				s.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

func (s *Server) rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				telemetry.ObserveRateLimited()
				s.writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// visitMiddleware records successful GET requests as visits, excluding
// operational endpoints and asset paths. Analytics API reads are recorded
// like any other page traffic.
func (s *Server) visitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		if s.recorder == nil || r.Method != http.MethodGet || ww.status >= http.StatusBadRequest {
			return
		}
		path := r.URL.Path
		if !trackablePath(path) {
			return
		}
		id, err := s.idGen.NewID()
		if err != nil {
			s.logger.Warn("visit id generation failed", zap.Error(err))
			return
		}
		s.recorder.Record(analytics.NewVisit(id, s.clock.Now(), path, r.UserAgent()))
	})
}

func trackablePath(path string) bool {
	switch path {
	case "/healthz", "/readyz", "/metrics":
		return false
	}
	return !analytics.IsAssetPath(path)
}

type requestIDKey struct{}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := rw.ResponseWriter.(http.Hijacker); ok {
		conn, buf, err := h.Hijack()
		if err != nil {
			return nil, nil, fmt.Errorf("hijack connection: %w", err)
		}
		return conn, buf, nil
	}
	return nil, nil, errors.New("hijacker not supported")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write([]byte(body)); err != nil {
		s.logger.Error("write response failed", zap.Error(err))
	}
}
