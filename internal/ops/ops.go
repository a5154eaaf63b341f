// Package ops runs the operational HTTP sidecar. The MCP transport itself is
// stdio; health and metrics need a port of their own to be scrapeable.
package ops

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/meteomcp/weather-mcp-service/internal/observability"
)

type Server struct {
	srv         *http.Server
	logger      *zap.Logger
	clientReady func() bool
	draining    atomic.Bool
}

// NewServer builds the sidecar on the given port. clientReady reports whether
// the shared HTTP client is initialized; it shows up in the health payload.
func NewServer(port string, clientReady func() bool, logger *zap.Logger) *Server {
	s := &Server{
		logger:      logger,
		clientReady: clientReady,
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler()).Methods("GET")

	s.srv = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Start serves in the background. Listen errors are logged, not fatal: the
// sidecar going down must not take the tool surface with it.
func (s *Server) Start() {
	go func() {
		s.logger.Info("ops server starting", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("ops server", zap.Error(err))
		}
	}()
}

// SetDraining flips the health endpoint to 503 while shutdown drains
// in-flight invocations.
func (s *Server) SetDraining(v bool) {
	s.draining.Store(v)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type healthResponse struct {
	Status       string `json:"status"`
	SharedClient bool   `json:"shared_client"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if s.clientReady != nil {
		resp.SharedClient = s.clientReady()
	}

	code := http.StatusOK
	if s.draining.Load() {
		resp.Status = "shutting-down"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
