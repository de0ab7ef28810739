// Package health exposes the simulator's liveness and state over HTTP.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// StateFunc returns the current simulation state for the /state endpoint.
// It must be safe to call from any goroutine.
type StateFunc func() any

// CheckFunc is a readiness probe.
type CheckFunc func(ctx context.Context) (bool, string)

// probeResult is one readiness probe outcome in the /health response.
type probeResult struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// Server serves /health, /live and /state. The state endpoint lets external
// tooling poll the same snapshot the dashboard renders.
type Server struct {
	port    int
	version string
	state   StateFunc
	checks  map[string]CheckFunc
	mu      sync.RWMutex
	server  *http.Server
}

// NewServer creates a health server. state may be nil, which disables the
// /state endpoint.
func NewServer(port int, version string, state StateFunc) *Server {
	return &Server{
		port:    port,
		version: version,
		state:   state,
		checks:  make(map[string]CheckFunc),
	}
}

// RegisterCheck registers a readiness probe included in /health.
func (s *Server) RegisterCheck(name string, check CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[name] = check
}

// Start begins serving in the background.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)
	if s.state != nil {
		mux.HandleFunc("/state", s.handleState)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		// The endpoint is optional; a bind failure must not take the
		// simulator down.
		_ = s.server.ListenAndServe()
	}()

	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	s.mu.RLock()
	checks := make(map[string]CheckFunc, len(s.checks))
	for k, v := range s.checks {
		checks[k] = v
	}
	s.mu.RUnlock()

	body := struct {
		Status    string                 `json:"status"`
		Version   string                 `json:"version,omitempty"`
		Checks    map[string]probeResult `json:"checks,omitempty"`
		Timestamp string                 `json:"timestamp"`
	}{
		Status:    "ok",
		Version:   s.version,
		Checks:    make(map[string]probeResult),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	code := http.StatusOK
	for name, check := range checks {
		healthy, msg := check(ctx)
		body.Checks[name] = probeResult{Healthy: healthy, Message: msg}
		if !healthy {
			body.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// handleState serves the full simulation snapshot as JSON.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.state()); err != nil {
		http.Error(w, "failed to encode state", http.StatusInternalServerError)
	}
}

// handleReady runs the registered probes and reports readiness without a
// body, for orchestrators that only care about the status code.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	s.mu.RLock()
	checks := make([]CheckFunc, 0, len(s.checks))
	for _, v := range s.checks {
		checks = append(checks, v)
	}
	s.mu.RUnlock()

	for _, check := range checks {
		if healthy, _ := check(ctx); !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}
