package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultDataURL, cfg.DataURL)
	assert.Equal(t, "heatmap.html", cfg.OutputFile)
	assert.Equal(t, "html", cfg.OutputFormat)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 2, cfg.FetchRetries)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HEATMAP_DATA_URL", "http://localhost:9000/temps.json")
	t.Setenv("HEATMAP_OUTPUT", "/tmp/chart.svg")
	t.Setenv("HEATMAP_FORMAT", "SVG")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("FETCH_RETRIES", "0")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/temps.json", cfg.DataURL)
	assert.Equal(t, "/tmp/chart.svg", cfg.OutputFile)
	assert.Equal(t, "svg", cfg.OutputFormat)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 0, cfg.FetchRetries)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"HEATMAP_DATA_URL", "ftp://example.com/data.json", "HEATMAP_DATA_URL"},
		{"HEATMAP_DATA_URL", "not a url", "HEATMAP_DATA_URL"},
		{"HEATMAP_FORMAT", "pdf", "HEATMAP_FORMAT"},
		{"FETCH_TIMEOUT", "soon", "FETCH_TIMEOUT"},
		{"FETCH_TIMEOUT", "-1s", "FETCH_TIMEOUT"},
		{"FETCH_RETRIES", "-1", "FETCH_RETRIES"},
		{"FETCH_RETRIES", "11", "FETCH_RETRIES"},
		{"FETCH_RETRIES", "many", "FETCH_RETRIES"},
		{"SHUTDOWN_TIMEOUT", "0s", "SHUTDOWN_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_FlagOverrides(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.OutputFormat = "png"
	assert.NoError(t, cfg.Validate())

	cfg.OutputFile = ""
	assert.ErrorContains(t, cfg.Validate(), "HEATMAP_OUTPUT")
}

func TestValidFormat(t *testing.T) {
	for _, f := range Formats {
		assert.True(t, ValidFormat(f))
	}
	assert.False(t, ValidFormat("HTML"))
	assert.False(t, ValidFormat(""))
}
