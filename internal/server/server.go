// Package server serves read-only transit queries over HTTP.
//
// Routes:
//
//	GET /healthz
//	GET /v1/buses/{name}
//	GET /v1/stops/{name}/buses
//	GET /v1/route?from=A&to=B
//
// Response bodies use the same JSON shapes as request-document responses.
// Unknown buses and stops, and unreachable destinations, answer 404 with
// {"error": "..."}. Every response carries an X-Request-ID header.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/matzehuels/transitcat/pkg/buildinfo"
	"github.com/matzehuels/transitcat/pkg/config"
	transiterrors "github.com/matzehuels/transitcat/pkg/errors"
	"github.com/matzehuels/transitcat/pkg/observability"
	"github.com/matzehuels/transitcat/pkg/requests"
	"github.com/matzehuels/transitcat/pkg/routing"
)

// RequestIDHeader carries the per-request id.
const RequestIDHeader = "X-Request-ID"

// Options configures a Server.
type Options struct {
	// AllowedOrigins enables CORS for the listed origins. Empty disables CORS.
	AllowedOrigins []string
}

// Server answers queries against one routing network.
type Server struct {
	net    *routing.Network
	logger *log.Logger
	router chi.Router
}

// New creates a server over net. A nil logger discards log output.
func New(net *routing.Network, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{net: net, logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			ExposedHeaders: []string{RequestIDHeader},
		}))
	}

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/buses/{name}", s.bus)
		r.Get("/stops/{name}/buses", s.stopBuses)
		r.Get("/route", s.route)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type ctxKey struct{}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// requestID assigns every request an id, taking a valid incoming
// X-Request-ID when present, and logs the outcome.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), ctxKey{}, id)

		observability.Server().OnRequest(ctx, id, r.Method, r.URL.Path)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.Server().OnResponse(ctx, id, r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path, "status", status, "took", elapsed)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	cat := s.net.Catalogue()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get().Version,
		"stops":   cat.StopCount(),
		"buses":   cat.BusCount(),
	})
}

func (s *Server) bus(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !validName(w, "bus", name) {
		return
	}
	resp := requests.BusStats(s.net.Catalogue(), queryID(r), name)
	s.respond(w, resp, "bus %q not found", name)
}

func (s *Server) stopBuses(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !validName(w, "stop", name) {
		return
	}
	resp := requests.StopBuses(s.net.Catalogue(), queryID(r), name)
	s.respond(w, resp, "stop %q not found", name)
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}
	if !validName(w, "stop", from) || !validName(w, "stop", to) {
		return
	}
	route, err := s.net.FindRoute(r.Context(), from, to)
	if err != nil {
		status := http.StatusInternalServerError
		if transiterrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		writeError(w, status, transiterrors.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, requests.NewRouteResponse(queryID(r), route))
}

func (s *Server) respond(w http.ResponseWriter, resp requests.Response, format string, name string) {
	if _, ok := resp.(requests.ErrorResponse); ok {
		writeError(w, http.StatusNotFound, transiterrors.New(transiterrors.ErrCodeNotFound, format, name).Message)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// validName answers 400 and reports false when name is not an acceptable
// stop or bus name.
func validName(w http.ResponseWriter, kind, name string) bool {
	if err := transiterrors.ValidateName(kind, name); err != nil {
		writeError(w, http.StatusBadRequest, transiterrors.UserMessage(err))
		return false
	}
	return true
}

// queryID returns the optional ?id= parameter echoed back as request_id.
func queryID(r *http.Request) int {
	id, _ := strconv.Atoi(r.URL.Query().Get("id"))
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
