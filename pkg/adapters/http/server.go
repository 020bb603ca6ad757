package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/lattice/internal/presentation/graph"
	"github.com/aretw0/lattice/pkg/dsl"
)

// Server exposes a program over HTTP. Requests are serialized with a mutex
// because stores are not safe for concurrent use.
type Server struct {
	mu       sync.Mutex
	program  *dsl.Program
	streams  *StreamManager
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	version  string
}

// Option configures the Server.
type Option func(*Server)

// WithGatherer serves the gathered metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// change is the payload streamed to SSE clients.
type change struct {
	Store string `json:"store"`
	State any    `json:"state"`
}

// NewHandler creates a new HTTP handler for the program. Every commit is
// streamed on GET /stream; the bridge watches commits through the program
// and does not subscribe to the stores.
func NewHandler(program *dsl.Program, opts ...Option) http.Handler {
	s := &Server{
		program: program,
		streams: NewStreamManager(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams.logger = s.logger

	program.OnChange(func(name string, state any) {
		if data, err := json.Marshal(change{Store: name, State: state}); err == nil {
			s.streams.Broadcast(string(data))
		}
	})

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/stores", s.ListStores)
	r.Get("/stores/{name}", s.GetStore)
	r.Post("/stores/{name}", s.SetStore)
	r.Post("/events/{name}", s.EmitEvent)
	r.Get("/graph", s.GetGraph)
	r.Get("/stream", s.Stream)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// writeError maps program errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var panicErr *dsl.PanicError
	switch {
	case errors.Is(err, dsl.ErrUnknownStore), errors.Is(err, dsl.ErrUnknownEvent):
		status = http.StatusNotFound
	case errors.As(err, &panicErr):
		status = http.StatusUnprocessableEntity
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	} else {
		s.logger.Warn("request rejected", "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeBody reads an optional JSON value. An empty body decodes to nil.
func decodeBody(r *http.Request) (any, error) {
	var v any
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	return v, nil
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":      "lattice-http",
		"version":  strings.TrimSpace(s.version),
		"scenario": s.program.Name(),
	})
}

// ListStores handles the GET /stores request.
func (s *Server) ListStores(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snapshot := s.program.Snapshot()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, snapshot)
}

// GetStore handles the GET /stores/{name} request.
func (s *Server) GetStore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mu.Lock()
	state, err := s.program.State(name)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, change{Store: name, State: state})
}

// SetStore handles the POST /stores/{name} request.
func (s *Server) SetStore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	value, err := decodeBody(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	err = s.program.Set(name, value)
	state, _ := s.program.State(name)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("store set", "store", name)
	s.writeJSON(w, http.StatusOK, change{Store: name, State: state})
}

// EmitEvent handles the POST /events/{name} request. The body is the event
// payload; the response is the snapshot after propagation.
func (s *Server) EmitEvent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	payload, err := decodeBody(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	err = s.program.Emit(name, payload)
	snapshot := s.program.Snapshot()
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("event emitted", "event", name)
	s.writeJSON(w, http.StatusOK, snapshot)
}

// GetGraph handles the GET /graph request. ?state=true adds current states.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	topo := s.program.Topology()
	s.mu.Unlock()

	overlay := &graph.GraphOverlay{ShowState: r.URL.Query().Get("state") == "true"}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, graph.GenerateMermaid(topo, overlay)); err != nil {
		s.logger.Error("graph write failed", "err", err)
	}
}

// Stream handles the GET /stream request (SSE). ?stores=a,b restricts the
// stream to the named stores.
func (s *Server) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("stream: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	watch := make(map[string]bool)
	if q := r.URL.Query().Get("stores"); q != "" {
		for _, name := range strings.Split(q, ",") {
			watch[strings.TrimSpace(name)] = true
		}
	}

	ch, cancel := s.streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("stream client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watch) > 0 {
				var c change
				if err := json.Unmarshal([]byte(msg), &c); err == nil && !watch[c.Store] {
					continue
				}
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
