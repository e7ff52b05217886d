package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes a session.Manager as a JSON API.
type Server struct {
	Manager *session.Manager

	logger   *slog.Logger
	gatherer prometheus.Gatherer
	health   func(context.Context) error
	validate *validator.Validate
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer serves metrics from g on /metrics instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithHealthCheck makes /healthz report 503 when check fails (e.g. history backend down).
func WithHealthCheck(check func(context.Context) error) Option {
	return func(s *Server) {
		s.health = check
	}
}

// NewHandler creates a new HTTP handler for the manager.
func NewHandler(mgr *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Manager:  mgr,
		logger:   logging.NewNop(),
		gatherer: prometheus.DefaultGatherer,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/automata", func(r chi.Router) {
		r.Get("/", s.List)
		r.Route("/{name}", func(r chi.Router) {
			r.Post("/", s.Create)
			r.Get("/", s.Describe)
			r.Delete("/", s.Delete)
			r.Get("/graph", s.Graph)
			r.Post("/states", s.AddState)
			r.Post("/transitions", s.AddTransition)
			r.Put("/initial", s.SetInitial)
			r.Post("/reset", s.Reset)
			r.Post("/runs", s.Run)
			r.Get("/runs", s.History)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newValidator() *validator.Validate {
	v := validator.New()
	// A transition symbol is exactly one character.
	_ = v.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) == 1
	})
	return v
}

type stateRequest struct {
	Name      string `json:"name" validate:"required"`
	Accepting bool   `json:"accepting"`
}

type transitionRequest struct {
	From   *int   `json:"from" validate:"required,min=0"`
	To     *int   `json:"to" validate:"required,min=0"`
	Symbol string `json:"symbol" validate:"symbol"`
}

type initialRequest struct {
	State *int `json:"state" validate:"required,min=0"`
}

type runRequest struct {
	Input string `json:"input"`
}

type runResponse struct {
	ID         string            `json:"id"`
	Accepted   bool              `json:"accepted"`
	Halt       domain.HaltReason `json:"halt"`
	FinalState domain.StateIndex `json:"final_state"`
	Consumed   int               `json:"consumed"`
	Trace      []string          `json:"trace"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAutomatonExists), errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, runner.ErrInputTooLong), errors.Is(err, runner.ErrInvalidUTF8):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnbuilt):
		return http.StatusPreconditionFailed
	case errors.Is(err, domain.ErrTraceOverflow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decode reads and validates a JSON body.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		s.logger.Debug("invalid request body", "path", r.URL.Path, "err", err)
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("validation failed: %v", err)})
		return false
	}
	return true
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Warn("health check failed", "err", err)
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// List handles GET /automata.
func (s *Server) List(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"automata": s.Manager.Names()})
}

// Create handles POST /automata/{name}.
func (s *Server) Create(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Manager.Create(r.Context(), name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

// Describe handles GET /automata/{name}.
func (s *Server) Describe(w http.ResponseWriter, r *http.Request) {
	def, err := s.Manager.Describe(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, def)
}

// Delete handles DELETE /automata/{name}.
func (s *Server) Delete(w http.ResponseWriter, r *http.Request) {
	if err := s.Manager.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddState handles POST /automata/{name}/states.
func (s *Server) AddState(w http.ResponseWriter, r *http.Request) {
	var body stateRequest
	if !s.decode(w, r, &body) {
		return
	}

	var idx domain.StateIndex
	err := s.Manager.Do(r.Context(), chi.URLParam(r, "name"), func(_ context.Context, a ports.Automaton) error {
		var err error
		idx, err = a.AddState(body.Name, body.Accepting)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]domain.StateIndex{"index": idx})
}

// AddTransition handles POST /automata/{name}/transitions.
func (s *Server) AddTransition(w http.ResponseWriter, r *http.Request) {
	var body transitionRequest
	if !s.decode(w, r, &body) {
		return
	}
	symbol, _ := utf8.DecodeRuneInString(body.Symbol)

	err := s.Manager.Do(r.Context(), chi.URLParam(r, "name"), func(_ context.Context, a ports.Automaton) error {
		return a.AddTransition(domain.StateIndex(*body.From), domain.StateIndex(*body.To), symbol)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetInitial handles PUT /automata/{name}/initial.
func (s *Server) SetInitial(w http.ResponseWriter, r *http.Request) {
	var body initialRequest
	if !s.decode(w, r, &body) {
		return
	}

	err := s.Manager.Do(r.Context(), chi.URLParam(r, "name"), func(_ context.Context, a ports.Automaton) error {
		return a.SetInitialState(domain.StateIndex(*body.State))
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /automata/{name}/reset.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	err := s.Manager.Do(r.Context(), chi.URLParam(r, "name"), func(_ context.Context, a ports.Automaton) error {
		return a.Reset()
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Run handles POST /automata/{name}/runs.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body runRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := runner.CheckInput(body.Input); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, rec, err := s.Manager.Run(r.Context(), chi.URLParam(r, "name"), body.Input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, runResponse{
		ID:         rec.ID,
		Accepted:   res.Accepted,
		Halt:       res.Halt,
		FinalState: res.FinalState,
		Consumed:   res.Consumed,
		Trace:      res.Trace.Lines(),
	})
}

// History handles GET /automata/{name}/runs.
func (s *Server) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	recs, err := s.Manager.History(r.Context(), chi.URLParam(r, "name"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]domain.RunRecord{"runs": recs})
}

// Graph handles GET /automata/{name}/graph, optionally overlaying ?trace=<input>.
// The overlay run is not recorded in history.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	traceInput, withTrace := r.URL.Query()["trace"]

	var out string
	err := s.Manager.Do(r.Context(), chi.URLParam(r, "name"), func(ctx context.Context, a ports.Automaton) error {
		var overlay *graph.GraphOverlay
		if withTrace {
			res, err := a.ProcessString(ctx, traceInput[0])
			if err != nil {
				return err
			}
			overlay = graph.OverlayFromResult(res)
		}
		out = graph.GenerateMermaid(a.Inspect(), overlay)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(out)); err != nil {
		s.logger.Error("graph write failed", "err", err)
	}
}
