// Package testutil provides shared test helpers for config files and fake backends.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ConfigOption adds YAML to the generated config file.
type ConfigOption func(*testConfig)

type testConfig struct {
	language           string
	outputFormat       string
	iconBaseURL        string
	iconCacheDirectory string
}

func WithLanguage(code string) ConfigOption {
	return func(c *testConfig) {
		c.language = code
	}
}

func WithOutputFormat(format string) ConfigOption {
	return func(c *testConfig) {
		c.outputFormat = format
	}
}

// WithIconCache points icon downloads at baseURL and stores them under tmpDir/icons.
func WithIconCache(baseURL string) ConfigOption {
	return func(c *testConfig) {
		c.iconBaseURL = baseURL
		c.iconCacheDirectory = "icons"
	}
}

// SetupTestConfig writes a config file that points at baseURL.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir, baseURL string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		language:     "en",
		outputFormat: "text",
		iconBaseURL:  "http://openweathermap.org/img/wn",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	iconCacheDirectory := ""
	if cfg.iconCacheDirectory != "" {
		iconCacheDirectory = filepath.Join(tmpDir, cfg.iconCacheDirectory)
	}

	configContent := fmt.Sprintf(`api:
  base_url: %s
app:
  language: %s
weather:
  icon_base_url: %s
  icon_cache_directory: %q
output:
  format: %s
`,
		baseURL,
		cfg.language,
		cfg.iconBaseURL,
		iconCacheDirectory,
		cfg.outputFormat,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// NewBackend starts an httptest server for handler and closes it with the test.
func NewBackend(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// WriteJSON writes body as a JSON response with the given status.
func WriteJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}
