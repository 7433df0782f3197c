package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultDataURL = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/global-temperature.json"

// Formats lists the supported output formats.
var Formats = []string{"html", "svg", "png"}

// Config holds all settings, populated from environment variables.
type Config struct {
	DataURL      string
	OutputFile   string
	OutputFormat string
	FetchTimeout time.Duration
	FetchRetries int

	HTTPAddr        string
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	retries, err := parseRetries()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataURL:         envOrDefault("HEATMAP_DATA_URL", defaultDataURL),
		OutputFile:      envOrDefault("HEATMAP_OUTPUT", "heatmap.html"),
		OutputFormat:    strings.ToLower(envOrDefault("HEATMAP_FORMAT", "html")),
		FetchTimeout:    fetchTimeout,
		FetchRetries:    retries,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: shutdownTimeout,
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that may also have been overridden by flags.
func (c *Config) Validate() error {
	u, err := url.Parse(c.DataURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid HEATMAP_DATA_URL %q", c.DataURL)
	}
	if !ValidFormat(c.OutputFormat) {
		return fmt.Errorf("invalid HEATMAP_FORMAT %q: want one of %s", c.OutputFormat, strings.Join(Formats, ", "))
	}
	if c.OutputFile == "" {
		return errors.New("HEATMAP_OUTPUT is required")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("invalid FETCH_TIMEOUT")
	}
	if c.FetchRetries < 0 {
		return errors.New("invalid FETCH_RETRIES")
	}
	return nil
}

// ValidFormat reports whether f is one of Formats.
func ValidFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseRetries() (int, error) {
	s := os.Getenv("FETCH_RETRIES")
	if s == "" {
		return 2, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 10 {
		return 0, errors.New("invalid FETCH_RETRIES: must be between 0 and 10")
	}
	return n, nil
}
