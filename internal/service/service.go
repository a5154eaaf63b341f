package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/meteomcp/weather-mcp-service/internal/meteo"
	"github.com/meteomcp/weather-mcp-service/internal/observability"
)

// ErrCityNotFound is returned when geocoding yields no candidate for the
// requested city. It is the only hard failure of the pipeline: upstream
// outages are reported as text in the normal result so callers can relay
// them, while an unknown city is a caller-input problem worth handling
// separately.
var ErrCityNotFound = errors.New("city not found")

// ClientSource provides the HTTP client for one invocation.
type ClientSource interface {
	Acquire() *http.Client
}

// WeatherService runs the two-step lookup: geocode the city, then fetch
// current conditions at the first match.
type WeatherService struct {
	meteo   *meteo.Client
	clients ClientSource
	logger  *zap.Logger
}

func NewWeatherService(meteoClient *meteo.Client, clients ClientSource, logger *zap.Logger) *WeatherService {
	return &WeatherService{
		meteo:   meteoClient,
		clients: clients,
		logger:  logger,
	}
}

// loggerFromContext extracts a zap.Logger from the invocation context if the
// middleware put one there.
func loggerFromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value("logger"); v != nil {
		if l, ok := v.(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return nil
}

// ResolveWeather resolves a city to a current-weather summary.
//
// Upstream failures (transport, non-2xx, undecodable body) are soft: the
// description comes back as the string result with a nil error. An empty
// geocoding result is hard: ErrCityNotFound on the error channel and no
// forecast call. If a step fails because the invocation context is done,
// the context error propagates instead of a soft-failure string.
func (s *WeatherService) ResolveWeather(ctx context.Context, city string) (string, error) {
	logger := loggerFromContext(ctx)
	if logger == nil {
		logger = s.logger
	}
	logger.Info("resolving weather", zap.String("city", city))

	hc := s.clients.Acquire()

	locations, err := s.meteo.Search(ctx, hc, city)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			observability.ToolInvocationsTotal.WithLabelValues(observability.ResultCanceled).Inc()
			return "", ctxErr
		}
		logger.Error("geocoding lookup failed", zap.Error(err))
		observability.ToolInvocationsTotal.WithLabelValues(observability.ResultGeocodingError).Inc()
		return fmt.Sprintf("Error fetching geocoding data: %v", err), nil
	}

	if len(locations) == 0 {
		logger.Warn("city not found", zap.String("city", city))
		observability.ToolInvocationsTotal.WithLabelValues(observability.ResultCityNotFound).Inc()
		return "", fmt.Errorf("%w: %s", ErrCityNotFound, city)
	}

	// First match only, per the geocoding API's own ranking.
	location := locations[0]
	logger.Info("location resolved",
		zap.Float64("lat", location.Latitude),
		zap.Float64("lng", location.Longitude),
		zap.String("name", location.Name))

	conditions, err := s.meteo.CurrentWeather(ctx, hc, location.Latitude, location.Longitude)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			observability.ToolInvocationsTotal.WithLabelValues(observability.ResultCanceled).Inc()
			return "", ctxErr
		}
		logger.Error("weather lookup failed", zap.Error(err))
		observability.ToolInvocationsTotal.WithLabelValues(observability.ResultWeatherError).Inc()
		return fmt.Sprintf("Error fetching weather data: %v", err), nil
	}

	logger.Info("weather resolved",
		zap.Float64p("temp", conditions.Temperature),
		zap.Float64p("wind", conditions.WindSpeed))
	observability.ToolInvocationsTotal.WithLabelValues(observability.ResultSuccess).Inc()

	return fmt.Sprintf("Current weather in %s: %s°C, Wind: %skm/h",
		location.Name,
		formatReading(conditions.Temperature),
		formatReading(conditions.WindSpeed)), nil
}

// formatReading renders a possibly-missing reading. A nil reading stays
// visible in the summary rather than being replaced by a made-up number.
func formatReading(v *float64) string {
	if v == nil {
		return "<nil>"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
