// Package httpclient owns the process-wide HTTP client used for all
// upstream calls.
package httpclient

import (
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/meteomcp/weather-mcp-service/internal/observability"
)

// Manager hands out the shared HTTP client for the lifetime of the process.
// Start and Stop are each called once, sequenced by the host wiring; they
// are not expected to race with Acquire.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger
	shared  atomic.Pointer[http.Client]
}

func NewManager(timeout time.Duration, logger *zap.Logger) *Manager {
	return &Manager{timeout: timeout, logger: logger}
}

// Start constructs the shared client. Call once, before serving invocations.
func (m *Manager) Start() {
	m.shared.Store(m.newClient())
}

// Acquire returns the shared client. If Start has not run yet it returns a
// fresh unshared client instead; that client is not tracked by the manager
// and relies on GC for cleanup. Each pre-start caller gets its own instance.
func (m *Manager) Acquire() *http.Client {
	if c := m.shared.Load(); c != nil {
		return c
	}
	observability.ClientFallbackTotal.Inc()
	m.logger.Warn("shared HTTP client not initialized, using temporary client")
	return m.newClient()
}

// Stop detaches the shared client and closes its idle connections. Call once,
// after in-flight invocations have drained.
func (m *Manager) Stop() {
	if c := m.shared.Swap(nil); c != nil {
		c.CloseIdleConnections()
	}
}

// Started reports whether the shared client is initialized. Used by the
// health endpoint.
func (m *Manager) Started() bool {
	return m.shared.Load() != nil
}

func (m *Manager) newClient() *http.Client {
	return &http.Client{Timeout: m.timeout}
}
