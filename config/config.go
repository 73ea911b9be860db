package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"weather-display/datasource"
	"weather-display/forecast"
	"weather-display/logger"
)

// Config represents the application configuration
type Config struct {
	OpenWeatherMap struct {
		APIKey  string        `yaml:"apiKey"`
		BaseURL string        `yaml:"baseURL"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"openWeatherMap"`

	Server struct {
		Port int `yaml:"port"`
		// Inbound requests per second accepted by the HTTP API; 0 disables throttling
		RequestsPerSecond float64 `yaml:"requestsPerSecond"`
		Burst             int     `yaml:"burst"`
	} `yaml:"server"`

	// Cutoff is "same-time" or "start-of-day"
	Cutoff        string        `yaml:"cutoff"`
	SearchTimeout time.Duration `yaml:"searchTimeout"`
	LogLevel      string        `yaml:"logLevel"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.OpenWeatherMap.BaseURL = datasource.DefaultBaseURL
	cfg.OpenWeatherMap.Timeout = 10 * time.Second
	cfg.Server.Port = 8080
	cfg.Server.RequestsPerSecond = 5
	cfg.Server.Burst = 10
	cfg.Cutoff = forecast.CutoffSameTime.String()
	cfg.SearchTimeout = 30 * time.Second
	cfg.LogLevel = "INFO"
	return cfg
}

// Load reads a YAML (or JSON) configuration file over the defaults and then
// applies environment overrides. A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := DefaultConfig()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Debugf("config file %s not found, using defaults", filename)
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := Parse(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data into cfg, keeping values that data does not set
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("OPENWEATHERMAP_API_KEY"); v != "" {
		cfg.OpenWeatherMap.APIKey = v
	}
	if v := os.Getenv("OPENWEATHERMAP_BASE_URL"); v != "" {
		cfg.OpenWeatherMap.BaseURL = v
	}
	if v := os.Getenv("WEATHER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WEATHER_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("WEATHER_CUTOFF"); v != "" {
		cfg.Cutoff = v
	}
	if v := os.Getenv("WEATHER_SEARCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid WEATHER_SEARCH_TIMEOUT %q: %w", v, err)
		}
		cfg.SearchTimeout = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// CutoffPolicy returns the configured daily selection policy
func (c *Config) CutoffPolicy() (forecast.CutoffPolicy, error) {
	return forecast.ParseCutoffPolicy(c.Cutoff)
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.OpenWeatherMap.APIKey == "" {
		return errors.New("no OpenWeatherMap API key provided")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid requestsPerSecond %v", c.Server.RequestsPerSecond)
	}
	if _, err := c.CutoffPolicy(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
