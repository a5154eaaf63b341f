package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for ToolInvocationsTotal.
const (
	ResultSuccess         = "success"
	ResultCityNotFound    = "city_not_found"
	ResultGeocodingError  = "geocoding_error"
	ResultWeatherError    = "weather_error"
	ResultInvalidArgument = "invalid_argument"
	ResultCanceled        = "canceled"
)

// API labels for the upstream call metrics.
const (
	APIGeocoding = "geocoding"
	APIForecast  = "forecast"
)

var (
	registry *prometheus.Registry

	// Tool invocation rate by outcome. Watch for: city_not_found spikes (bad
	// caller input) vs geocoding_error/weather_error (upstream trouble).
	ToolInvocationsTotal *prometheus.CounterVec

	// End-to-end invocation latency, both upstream calls included.
	ToolInvocationDuration prometheus.Histogram

	// Concurrent invocations in flight. Watch for: saturation during drain.
	ToolInvocationsInFlight prometheus.Gauge

	// Upstream call rate per API. Watch for: error vs success ratio.
	UpstreamCallsTotal *prometheus.CounterVec

	// Upstream latency per API. Watch for: p95 > 2s (upstream degradation).
	UpstreamCallDuration *prometheus.HistogramVec

	// Acquisitions served by a temporary unshared client because the shared
	// client was not initialized. Anything nonzero means startup ordering is off.
	ClientFallbackTotal prometheus.Counter
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	ToolInvocationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tool_invocations_total",
		Help: "Total get_weather invocations by result.",
	}, []string{"result"})

	ToolInvocationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tool_invocation_duration_seconds",
		Help:    "End-to-end tool invocation duration in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	ToolInvocationsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tool_invocations_in_flight",
		Help: "Number of tool invocations currently being served.",
	})

	UpstreamCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_calls_total",
		Help: "Total calls to Open-Meteo APIs by API and status.",
	}, []string{"api", "status"})

	UpstreamCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_call_duration_seconds",
		Help:    "Open-Meteo call duration in seconds by API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"api"})

	ClientFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "client_fallback_total",
		Help: "HTTP client acquisitions served by a temporary unshared client.",
	})

	registry.MustRegister(
		ToolInvocationsTotal,
		ToolInvocationDuration,
		ToolInvocationsInFlight,
		UpstreamCallsTotal,
		UpstreamCallDuration,
		ClientFallbackTotal,
	)
}

// MetricsHandler returns the HTTP handler serving the private registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
