// Package api exposes the chat orchestration over a small JSON HTTP surface.
//
// Routes:
//
//	POST /chat    - validate, compose, invoke, extract; one round trip per call
//	GET  /health  - liveness probe, outside the middleware stack
package api

import (
	"errors"
	"net/http"

	"github.com/botforge/botforge/internal/agent"
	"github.com/botforge/botforge/internal/chat"
	"github.com/botforge/botforge/internal/log"
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger         log.Logger
	Agent          *agent.Agent // Required
	ExtractionMode chat.Mode    // "" defaults to ModeAll
	CORSOrigins    []string     // Allowed origins for CORS
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a new API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Agent == nil {
		return nil, errors.New("agent is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	mode := cfg.ExtractionMode
	if mode == "" {
		mode = chat.ModeAll
	}

	ch := &chatHandler{
		agent:  cfg.Agent,
		mode:   mode,
		logger: cfg.Logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", ch.send)

	// Build middleware stack (outermost first):
	//   Recovery → RequestID → Logging → CORS → Routes
	// RequestID must be before Logging so request_id is available in log attributes.
	var handler http.Handler = mux
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(cfg.Logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(cfg.Logger)(handler)

	// Top-level mux keeps health probes outside the middleware stack.
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health(cfg.Logger))
	topMux.Handle("/", handler)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
