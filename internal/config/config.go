package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds service configuration loaded from YAML and env.
type Config struct {
	GeocodingAPIURL string
	ForecastAPIURL  string
	UpstreamTimeout time.Duration

	// OpsPort is the port for the /health + /metrics sidecar. Empty disables it.
	OpsPort string

	CityMaxLength int

	ShutdownTimeout    time.Duration
	DrainTimeout       time.Duration
	DrainCheckInterval time.Duration
}

type fileConfig struct {
	Ops struct {
		Port string `yaml:"port"`
	} `yaml:"ops"`

	GeocodingAPI struct {
		URL string `yaml:"url"`
	} `yaml:"geocoding_api"`

	ForecastAPI struct {
		URL string `yaml:"url"`
	} `yaml:"forecast_api"`

	Upstream struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"upstream"`

	Tool struct {
		CityMaxLength int `yaml:"city_max_length"`
	} `yaml:"tool"`

	Shutdown struct {
		Timeout            string `yaml:"timeout"`
		DrainTimeout       string `yaml:"drain_timeout"`
		DrainCheckInterval string `yaml:"drain_check_interval"`
	} `yaml:"shutdown"`
}

// Load reads configuration from config/{ENV_NAME}.yaml (default dev).
// A missing file is not an error: MCP clients launch the server from an
// arbitrary working directory, so every setting has a default. OPS_PORT,
// GEOCODING_API_URL and FORECAST_API_URL env vars override the file.
func Load() (*Config, error) {
	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	var fc fileConfig
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	configPath := filepath.Join(cwd, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg := &Config{}

	cfg.GeocodingAPIURL = strings.TrimSpace(os.Getenv("GEOCODING_API_URL"))
	if cfg.GeocodingAPIURL == "" {
		cfg.GeocodingAPIURL = strings.TrimSpace(fc.GeocodingAPI.URL)
	}
	if cfg.GeocodingAPIURL == "" {
		cfg.GeocodingAPIURL = "https://geocoding-api.open-meteo.com/v1/search"
	}

	cfg.ForecastAPIURL = strings.TrimSpace(os.Getenv("FORECAST_API_URL"))
	if cfg.ForecastAPIURL == "" {
		cfg.ForecastAPIURL = strings.TrimSpace(fc.ForecastAPI.URL)
	}
	if cfg.ForecastAPIURL == "" {
		cfg.ForecastAPIURL = "https://api.open-meteo.com/v1/forecast"
	}

	cfg.UpstreamTimeout = parseDuration(fc.Upstream.Timeout, 10*time.Second)

	cfg.OpsPort = strings.TrimSpace(os.Getenv("OPS_PORT"))
	if cfg.OpsPort == "" {
		cfg.OpsPort = strings.TrimSpace(fc.Ops.Port)
	}

	cfg.CityMaxLength = fc.Tool.CityMaxLength
	if cfg.CityMaxLength <= 0 {
		cfg.CityMaxLength = 100
	}

	cfg.ShutdownTimeout = parseDuration(fc.Shutdown.Timeout, 10*time.Second)
	cfg.DrainTimeout = parseDuration(fc.Shutdown.DrainTimeout, 30*time.Second)
	cfg.DrainCheckInterval = parseDuration(fc.Shutdown.DrainCheckInterval, 100*time.Millisecond)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDuration parses a duration string and returns defaultVal on empty
// input, parse error, or a result <= 0.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func validate(cfg *Config) error {
	if !strings.HasPrefix(cfg.GeocodingAPIURL, "http://") && !strings.HasPrefix(cfg.GeocodingAPIURL, "https://") {
		return fmt.Errorf("geocoding_api.url must be an http(s) URL, got %q", cfg.GeocodingAPIURL)
	}
	if !strings.HasPrefix(cfg.ForecastAPIURL, "http://") && !strings.HasPrefix(cfg.ForecastAPIURL, "https://") {
		return fmt.Errorf("forecast_api.url must be an http(s) URL, got %q", cfg.ForecastAPIURL)
	}
	return nil
}
