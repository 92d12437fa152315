// Package api exposes layout generation over HTTP. A single JSON
// endpoint accepts a plan document and returns the generated layout;
// health and Prometheus metrics endpoints ride alongside.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/piwi3910/floorplan/internal/engine"
	"github.com/piwi3910/floorplan/internal/model"
	"github.com/piwi3910/floorplan/internal/project"
)

// Server routes layout generation requests to the engine.
type Server struct {
	router  chi.Router
	logger  *log.Logger
	metrics *Metrics
}

// errorResponse is the JSON error envelope returned by all endpoints.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewServer builds the HTTP handler with all routes attached.
func NewServer(logger *log.Logger) *Server {
	s := &Server{
		logger:  logger,
		metrics: NewMetrics(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerate runs a full layout generation for the posted plan and
// returns the plan with its result attached.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var plan model.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		s.metrics.GenerateTotal.WithLabelValues("bad_request").Inc()
		s.writeError(w, http.StatusBadRequest, "invalid request body", "bad_request")
		return
	}
	if plan.Settings == (model.SearchSettings{}) {
		plan.Settings = model.DefaultSearchSettings()
	}
	if err := project.ValidatePlanDocument(&plan); err != nil {
		s.metrics.GenerateTotal.WithLabelValues("bad_request").Inc()
		s.writeError(w, http.StatusBadRequest, err.Error(), "bad_request")
		return
	}

	start := time.Now()
	result, err := engine.Generate(r.Context(), plan)
	s.metrics.GenerateDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		status, kind := classifyError(err)
		s.metrics.GenerateTotal.WithLabelValues(kind).Inc()
		s.logger.Warn("generation failed", "kind", kind, "err", err)
		s.writeError(w, status, err.Error(), kind)
		return
	}

	s.metrics.GenerateTotal.WithLabelValues("ok").Inc()
	s.metrics.GenerateAttempts.Observe(float64(result.Attempts))
	s.logger.Info("layout generated",
		"rooms", len(result.PlacedRooms),
		"attempts", result.Attempts,
		"adjacency", result.AdjacencyScore,
		"duration", time.Since(start))

	plan.Result = &result
	s.writeJSON(w, http.StatusOK, plan)
}

// classifyError maps engine errors to an HTTP status and a stable kind
// string clients can switch on.
func classifyError(err error) (int, string) {
	var (
		shapeErr *engine.InvalidShapeError
		roomErr  *engine.InvalidRoomError
		adjErr   *engine.InvalidAdjacencyError
		cfgErr   *engine.InvalidConfigError
		noFitErr *engine.NoFeasiblePlacementError
	)
	switch {
	case errors.As(err, &shapeErr):
		return http.StatusUnprocessableEntity, "invalid_shape"
	case errors.As(err, &roomErr):
		return http.StatusUnprocessableEntity, "invalid_room"
	case errors.As(err, &adjErr):
		return http.StatusUnprocessableEntity, "invalid_adjacency"
	case errors.As(err, &cfgErr):
		return http.StatusUnprocessableEntity, "invalid_config"
	case errors.As(err, &noFitErr):
		return http.StatusConflict, "no_feasible_placement"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, kind string) {
	s.writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}
