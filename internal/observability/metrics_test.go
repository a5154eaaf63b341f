package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestMetricsHandler_ServesRegisteredMetrics verifies the handler exposes the
// service metrics from the private registry.
func TestMetricsHandler_ServesRegisteredMetrics(t *testing.T) {
	ToolInvocationsTotal.WithLabelValues(ResultSuccess).Inc()
	UpstreamCallsTotal.WithLabelValues(APIGeocoding, "success").Inc()

	server := httptest.NewServer(MetricsHandler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	text := string(body)

	for _, metric := range []string{
		"tool_invocations_total",
		"upstream_calls_total",
		"client_fallback_total",
		"tool_invocations_in_flight",
	} {
		if !strings.Contains(text, metric) {
			t.Errorf("metrics output missing %q", metric)
		}
	}
}
