// Package meteo is the client for the Open-Meteo geocoding and forecast APIs.
package meteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/meteomcp/weather-mcp-service/internal/models"
	"github.com/meteomcp/weather-mcp-service/internal/observability"
)

var (
	ErrGeocodingUnavailable = errors.New("geocoding request failed")
	ErrForecastUnavailable  = errors.New("forecast request failed")
)

// Doer is the slice of *http.Client the package needs. The client handle is
// threaded in per call because its lifecycle is owned elsewhere.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	geocodingURL string
	forecastURL  string
}

func NewClient(geocodingURL, forecastURL string) *Client {
	return &Client{
		geocodingURL: geocodingURL,
		forecastURL:  forecastURL,
	}
}

// Search resolves a city name to candidate locations, best match first.
// The returned slice may be empty; that is not an error at this layer.
func (c *Client) Search(ctx context.Context, hc Doer, city string) ([]models.Location, error) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	body, err := c.get(ctx, hc, observability.APIGeocoding, c.geocodingURL, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeocodingUnavailable, err)
	}

	var payload struct {
		Results []models.Location `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrGeocodingUnavailable, err)
	}
	return payload.Results, nil
}

// CurrentWeather fetches current conditions for a coordinate pair. Readings
// the upstream omits come back nil.
func (c *Client) CurrentWeather(ctx context.Context, hc Doer, lat, lng float64) (models.CurrentConditions, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lng))
	params.Set("current_weather", "true")

	body, err := c.get(ctx, hc, observability.APIForecast, c.forecastURL, params)
	if err != nil {
		return models.CurrentConditions{}, fmt.Errorf("%w: %v", ErrForecastUnavailable, err)
	}

	var payload struct {
		CurrentWeather models.CurrentConditions `json:"current_weather"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.CurrentConditions{}, fmt.Errorf("%w: parse response: %v", ErrForecastUnavailable, err)
	}
	return payload.CurrentWeather, nil
}

func (c *Client) get(ctx context.Context, hc Doer, api, rawURL string, params url.Values) ([]byte, error) {
	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := hc.Do(req)
	duration := time.Since(start).Seconds()
	if err != nil {
		observability.UpstreamCallsTotal.WithLabelValues(api, "error").Inc()
		observability.UpstreamCallDuration.WithLabelValues(api).Observe(duration)
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	observability.UpstreamCallsTotal.WithLabelValues(api, statusLabel(resp.StatusCode)).Inc()
	observability.UpstreamCallDuration.WithLabelValues(api).Observe(duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// formatCoord renders a coordinate with the minimal digits that round-trip,
// so the forecast query carries exactly what geocoding returned.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func statusLabel(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "success"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500:
		return "server_error"
	default:
		return "error"
	}
}
