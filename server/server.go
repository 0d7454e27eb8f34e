// Package server exposes the scaling engine over HTTP. It is a thin
// wrapper: every endpoint maps 1:1 onto an engine operation and carries no
// scaling logic of its own.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"vpscale/config"
	"vpscale/scale"
)

// Server wires a scaling engine into an HTTP API.
type Server struct {
	engine *scale.Engine
	logger *slog.Logger
}

// New returns a server around engine. A nil logger falls back to
// slog.Default().
func New(engine *scale.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{engine: engine, logger: logger}
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/scale", s.handleScale)
		r.Get("/metrics", s.handleMetrics)
		r.Get("/config", s.handleConfig)
		r.Post("/cache/clear", s.handleCacheClear)
		r.Post("/cache/invalidate", s.handleCacheInvalidate)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("serving scaling API", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type scaleRequest struct {
	Value       float64  `json:"value"`
	Breakpoint  string   `json:"breakpoint"`
	Token       string   `json:"token,omitempty"`
	Scale       *float64 `json:"scale,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Step        *float64 `json:"step,omitempty"`
	BypassCache bool     `json:"bypassCache,omitempty"`
}

type invalidateRequest struct {
	Pattern string `json:"pattern"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Breakpoint == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "breakpoint is required"})
		return
	}

	bp, ok := s.engine.LookupBreakpoint(req.Breakpoint)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown breakpoint: " + req.Breakpoint})
		return
	}

	result, err := s.engine.ScaleValue(req.Value, bp, scale.Options{
		Token:       req.Token,
		Scale:       req.Scale,
		Min:         req.Min,
		Max:         req.Max,
		Step:        req.Step,
		BypassCache: req.BypassCache,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scale.ErrInvalidBreakpoint) {
			status = http.StatusNotFound
		}
		s.logger.Error("scale request failed", "breakpoint", req.Breakpoint, "error", err)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Metrics())
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, config.FromScale(s.engine.Config()))
}

func (s *Server) handleCacheClear(w http.ResponseWriter, _ *http.Request) {
	s.engine.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	var req invalidateRequest
	if r.Body != nil {
		// An empty or absent body clears everything, matching the
		// engine's invalidate semantics.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	s.engine.InvalidateCache(req.Pattern)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
