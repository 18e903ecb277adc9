package viewer

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/gridsight/hexviz/internal/config"
)

// Server exposes the view over HTTP: the map page, the layer payload and a
// dataset summary.
type Server struct {
	view *View
	cfg  config.MapConfig

	group singleflight.Group

	mu    sync.RWMutex
	layer []byte // cached layer JSON, built on first request
}

// NewServer creates a Server around a View.
func NewServer(view *View, cfg config.MapConfig) *Server {
	return &Server{view: view, cfg: cfg}
}

// Router builds the chi router with the standard middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	r.Use(rateLimit(rate.Limit(s.cfg.RateLimitRPS), s.cfg.RateLimitBurst))

	r.Get("/", s.handlePage)
	r.Get("/api/layer", s.handleLayer)
	r.Get("/api/stats", s.handleStats)
	r.Get("/health", s.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

// handleLayer returns the full render payload, building it once and serving
// the cached bytes afterward. Concurrent cold-start requests share a single
// build via singleflight.
func (s *Server) handleLayer(w http.ResponseWriter, r *http.Request) {
	if s.view.Load(r.Context()) == StateEmpty {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": s.cfg.EmptyMessage})
		return
	}

	s.mu.RLock()
	cached := s.layer
	s.mu.RUnlock()

	if cached == nil {
		built, err, _ := s.group.Do("layer", func() (any, error) {
			return s.buildLayerJSON()
		})
		if err != nil {
			zap.L().Error("viewer: layer build failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "layer build failed"})
			return
		}
		cached = built.([]byte)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	_, _ = w.Write(cached)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	state := s.view.Load(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"state":   state,
		"records": len(s.view.Records()),
		"range":   s.view.Range(),
	})
}

func (s *Server) buildLayerJSON() ([]byte, error) {
	s.mu.RLock()
	if s.layer != nil {
		cached := s.layer
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	layer, err := BuildLayer(s.view.Records(), s.view.Range(), s.cfg)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(layer)
	if err != nil {
		return nil, eris.Wrap(err, "viewer: marshal layer")
	}

	s.mu.Lock()
	s.layer = data
	s.mu.Unlock()
	return data, nil
}

// rateLimit applies one shared token bucket across all clients.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
