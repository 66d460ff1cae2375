package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, 5, config.Sync.BatchSize)
	assert.Equal(t, "http://localhost:8080", config.Store.URL)
	assert.Equal(t, "info", config.Logging.Level)
	assert.True(t, config.Storage.Badger.Enabled)
}

func TestLoadFromFiles_Merge(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.toml")
	require.NoError(t, os.WriteFile(base, []byte(`
[store]
url = "https://kb.internal"
api_key = "base-key"

[sync]
batch_size = 10
`), 0644))

	override := filepath.Join(dir, "override.toml")
	require.NoError(t, os.WriteFile(override, []byte(`
[store]
api_key = "override-key"
`), 0644))

	config, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	// Later files override earlier ones, untouched values survive
	assert.Equal(t, "https://kb.internal", config.Store.URL)
	assert.Equal(t, "override-key", config.Store.APIKey)
	assert.Equal(t, 10, config.Sync.BatchSize)
}

func TestLoadFromFiles_EnvOverrides(t *testing.T) {
	t.Setenv("COLLIGO_STORE_URL", "https://env.example.com")
	t.Setenv("COLLIGO_API_KEY", "env-key")
	t.Setenv("COLLIGO_SYNC_BATCH_SIZE", "3")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", config.Store.URL)
	assert.Equal(t, "env-key", config.Store.APIKey)
	assert.Equal(t, 3, config.Sync.BatchSize)
}

func TestLoadFromFiles_OpenWebUIFallback(t *testing.T) {
	t.Setenv("OPEN_WEBUI_URL", "https://webui.example.com")
	t.Setenv("OPEN_WEBUI_API_KEY", "webui-key")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "https://webui.example.com", config.Store.URL)
	assert.Equal(t, "webui-key", config.Store.APIKey)
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/colligo.toml")
	assert.Error(t, err)
}

func TestValidate_MissingAPIKey(t *testing.T) {
	config := NewDefaultConfig()

	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is required")
}

func TestValidate_InvalidBatchSize(t *testing.T) {
	config := NewDefaultConfig()
	config.Store.APIKey = "key"
	config.Sync.BatchSize = 0

	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch_size")
}

func TestValidate_InvalidTimeout(t *testing.T) {
	config := NewDefaultConfig()
	config.Store.APIKey = "key"
	config.Store.Timeout = "not-a-duration"

	assert.Error(t, config.Validate())
}

func TestRequestTimeout_Default(t *testing.T) {
	s := StoreConfig{}
	timeout, err := s.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)
}

func TestNormalizedURL(t *testing.T) {
	assert.Equal(t, "https://host/api/v1", (&StoreConfig{URL: "https://host"}).NormalizedURL())
	assert.Equal(t, "https://host/api/v1", (&StoreConfig{URL: "https://host/"}).NormalizedURL())
	assert.Equal(t, "https://host/api/v1", (&StoreConfig{URL: "https://host/api/v1"}).NormalizedURL())
}
