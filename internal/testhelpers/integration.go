//go:build integration
// +build integration

package testhelpers

import (
	"os"
	"testing"
)

// IntegrationTestConfig holds endpoints for live Open-Meteo integration tests.
type IntegrationTestConfig struct {
	GeocodingAPIURL string
	ForecastAPIURL  string
}

// GetIntegrationConfig loads integration test configuration from environment.
// Skips the test unless RUN_INTEGRATION=1: the live APIs are rate limited and
// CI should opt in explicitly.
func GetIntegrationConfig(t *testing.T) IntegrationTestConfig {
	if os.Getenv("RUN_INTEGRATION") != "1" {
		t.Skip("RUN_INTEGRATION not set, skipping integration test")
	}

	geocodingURL := os.Getenv("GEOCODING_API_URL")
	if geocodingURL == "" {
		geocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	forecastURL := os.Getenv("FORECAST_API_URL")
	if forecastURL == "" {
		forecastURL = "https://api.open-meteo.com/v1/forecast"
	}

	return IntegrationTestConfig{
		GeocodingAPIURL: geocodingURL,
		ForecastAPIURL:  forecastURL,
	}
}
