// Package v1 implements the native API v1 endpoints.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vmunix/homefeed/internal/feed"
	"github.com/vmunix/homefeed/internal/jellyfin"
	"github.com/vmunix/homefeed/internal/match"
	"github.com/vmunix/homefeed/internal/render"
	"github.com/vmunix/homefeed/pkg/imageref"
)

// Config holds API server configuration.
type Config struct {
	Version string
	Load    feed.LoadOptions
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
}

// New creates a v1 API server with validated dependencies.
func New(deps ServerDeps, cfg Config) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, errors.Join(ErrMissingDependency, err)
	}
	return &Server{deps: deps, cfg: cfg}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Home screen
	mux.HandleFunc("GET /api/v1/home", s.getHome)
	mux.HandleFunc("POST /api/v1/home/refresh", s.refreshHome)

	// Items
	mux.HandleFunc("GET /api/v1/items/{id}/image", s.requireItems(s.getItemImage))
	mux.HandleFunc("GET /api/v1/search", s.search)

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) screen(st feed.State) render.Screen {
	return render.Render(st, s.deps.BaseURL, s.deps.Resolver)
}

func (s *Server) getHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.screen(s.deps.Feed.State()))
}

func (s *Server) refreshHome(w http.ResponseWriter, r *http.Request) {
	screen := s.screen(s.deps.Feed.Load(r.Context(), s.cfg.Load))
	code := http.StatusOK
	if screen.Status == render.StatusError {
		code = http.StatusBadGateway
	}
	writeJSON(w, code, screen)
}

func (s *Server) getItemImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	o, err := imageref.ParseOrientation(r.URL.Query().Get("orientation"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ORIENTATION", err.Error())
		return
	}

	item, err := s.deps.Items.LookupItem(r.Context(), id)
	switch {
	case errors.Is(err, feed.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
		return
	case errors.Is(err, jellyfin.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		return
	}

	ref := s.deps.Resolver.Resolve(item, o)
	url := ref.URL(s.deps.BaseURL)
	if redirect, _ := strconv.ParseBool(r.URL.Query().Get("redirect")); redirect {
		http.Redirect(w, r, url, http.StatusFound)
		return
	}

	writeJSON(w, http.StatusOK, imageResponse{
		ItemID:      item.ID,
		Orientation: o.String(),
		Reference:   ref,
		URL:         url,
		AspectRatio: imageref.AspectRatio(o),
	})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "q is required")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	hits := match.Find(q, s.screen(s.deps.Feed.State()), limit)
	if hits == nil {
		hits = []match.Hit{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Hits: hits})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:      "ok",
		Version:     s.cfg.Version,
		Feed:        s.screen(s.deps.Feed.State()).Status,
		MediaServer: s.deps.BaseURL,
	}
	if s.deps.Offline != nil {
		if n, err := s.deps.Offline.Count(r.Context()); err == nil {
			resp.OfflineItems = &n
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
