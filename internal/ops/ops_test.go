package ops

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestServer(t *testing.T, clientReady func() bool) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer("0", clientReady, zap.NewNop())
	ts := httptest.NewServer(s.srv.Handler)
	t.Cleanup(ts.Close)
	return s, ts
}

func TestHealth_OK(t *testing.T) {
	_, ts := newTestServer(t, func() bool { return true })

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Status       string `json:"status"`
		SharedClient bool   `json:"shared_client"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Status != "ok" {
		t.Errorf("status = %q, want ok", payload.Status)
	}
	if !payload.SharedClient {
		t.Error("shared_client = false, want true")
	}
}

func TestHealth_ShuttingDown(t *testing.T) {
	s, ts := newTestServer(t, func() bool { return true })
	s.SetDraining(true)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "shutting-down") {
		t.Errorf("body = %s, want shutting-down status", body)
	}
}

func TestHealth_ReportsUninitializedClient(t *testing.T) {
	_, ts := newTestServer(t, func() bool { return false })

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		SharedClient bool `json:"shared_client"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.SharedClient {
		t.Error("shared_client = true, want false")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "# HELP") {
		t.Error("metrics output missing HELP text")
	}
}
