// Package web exposes the package listings and dependency trees as a
// read-only JSON API for the browser frontend.
package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"rostree/internal/app"
	"rostree/internal/types"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(corsHeaders)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/packages", s.handlePackages)
		r.Get("/packages/sources", s.handlePackagesBySource)
		r.Get("/tree/{package}", s.handleTree)
		r.Get("/workspaces", s.handleWorkspaces)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePackages(w http.ResponseWriter, r *http.Request) {
	packages, err := s.svc.List(r.Context(), app.ListRequest{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list packages")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"packages": packages})
}

func (s *Server) handlePackagesBySource(w http.ResponseWriter, r *http.Request) {
	groups, err := s.svc.ListBySource(r.Context(), app.ListRequest{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list packages")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sources": groups})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	pkg := chi.URLParam(r, "package")

	maxDepth := -1
	if raw := r.URL.Query().Get("depth"); raw != "" {
		depth, err := strconv.Atoi(raw)
		if err != nil || depth < 1 || depth > 50 {
			writeError(w, http.StatusBadRequest, "depth must be an integer between 1 and 50")
			return
		}
		maxDepth = depth
	}
	runtime := r.URL.Query().Get("runtime") == "true"

	node, err := s.svc.Tree(r.Context(), app.TreeRequest{
		Package:     pkg,
		MaxDepth:    maxDepth,
		RuntimeOnly: runtime,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if node.Status == types.NodeStatusNotFound {
		writeError(w, http.StatusNotFound, "package not found: "+pkg)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (s *Server) handleWorkspaces(w http.ResponseWriter, r *http.Request) {
	workspaces, err := s.svc.Scan(r.Context(), app.ScanRequest{
		MaxDepth:      4,
		IncludeHome:   true,
		IncludeSystem: true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to scan workspaces")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"workspaces": workspaces})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next.ServeHTTP(w, r)
	})
}

// corsHeaders allows the development frontend origin to call the API.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
