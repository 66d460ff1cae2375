package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Store       StoreConfig   `toml:"store"`
	Sync        SyncConfig    `toml:"sync"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
}

// StoreConfig configures the remote knowledge-store endpoint
type StoreConfig struct {
	URL        string `toml:"url" validate:"required"`     // Base URL, /api/v1 appended if missing
	APIKey     string `toml:"api_key" validate:"required"` // Bearer token for all calls
	UserAPIKey string `toml:"user_api_key"`                // Optional restricted token for as-user queries
	Timeout    string `toml:"timeout"`                     // e.g. "30s" - HTTP request timeout
	RateLimit  int    `toml:"rate_limit"`                  // Requests per second against the store
}

// SyncConfig configures the reconciliation engine
type SyncConfig struct {
	BatchSize int `toml:"batch_size" validate:"gte=1"` // Files per upload/attach batch
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration for the
// sync-state store
type BadgerConfig struct {
	Enabled        bool   `toml:"enabled"`          // Persist run history and URL index
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// NewDefaultConfig returns the built-in defaults. Files, environment
// variables and CLI flags layer on top in that order.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Store: StoreConfig{
			URL:       "http://localhost:8080",
			Timeout:   "30s",
			RateLimit: 10,
		},
		Sync: SyncConfig{
			BatchSize: 5,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Enabled: true,
				Path:    "./data/colligo",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier
// files; environment variables override everything.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies COLLIGO_* environment variables, falling
// back to the OPEN_WEBUI_* names the store's own tooling uses.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("COLLIGO_ENV"); env != "" {
		config.Environment = env
	}

	if url := os.Getenv("COLLIGO_STORE_URL"); url != "" {
		config.Store.URL = url
	} else if url := os.Getenv("OPEN_WEBUI_URL"); url != "" {
		config.Store.URL = url
	}

	if key := os.Getenv("COLLIGO_API_KEY"); key != "" {
		config.Store.APIKey = key
	} else if key := os.Getenv("OPEN_WEBUI_API_KEY"); key != "" {
		config.Store.APIKey = key
	}

	if key := os.Getenv("COLLIGO_USER_API_KEY"); key != "" {
		config.Store.UserAPIKey = key
	} else if key := os.Getenv("OPEN_WEBUI_TEST_USER_API_KEY"); key != "" {
		config.Store.UserAPIKey = key
	}

	if timeout := os.Getenv("COLLIGO_STORE_TIMEOUT"); timeout != "" {
		config.Store.Timeout = timeout
	}

	if rateLimit := os.Getenv("COLLIGO_STORE_RATE_LIMIT"); rateLimit != "" {
		if n, err := strconv.Atoi(rateLimit); err == nil {
			config.Store.RateLimit = n
		}
	}

	if batchSize := os.Getenv("COLLIGO_SYNC_BATCH_SIZE"); batchSize != "" {
		if n, err := strconv.Atoi(batchSize); err == nil {
			config.Sync.BatchSize = n
		}
	}

	if badgerPath := os.Getenv("COLLIGO_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if level := os.Getenv("COLLIGO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if output := os.Getenv("COLLIGO_LOG_OUTPUT"); output != "" {
		config.Logging.Output = strings.Split(output, ",")
	}
}

// Validate checks the configuration for construction-time errors.
// Missing credentials and an invalid batch size are rejected here,
// eagerly, rather than surfacing mid-operation.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				switch fe.Namespace() {
				case "Config.Store.APIKey":
					return fmt.Errorf("api key is required: set store.api_key or the COLLIGO_API_KEY environment variable")
				case "Config.Store.URL":
					return fmt.Errorf("store url is required: set store.url or the COLLIGO_STORE_URL environment variable")
				case "Config.Sync.BatchSize":
					return fmt.Errorf("sync.batch_size must be >= 1, got %v", fe.Value())
				}
			}
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := c.Store.RequestTimeout(); err != nil {
		return fmt.Errorf("invalid store.timeout: %w", err)
	}

	return nil
}

// RequestTimeout parses the configured HTTP timeout.
func (s *StoreConfig) RequestTimeout() (time.Duration, error) {
	if s.Timeout == "" {
		return 30 * time.Second, nil
	}
	return time.ParseDuration(s.Timeout)
}

// NormalizedURL returns the store base URL with the /api/v1 suffix the
// API is served under.
func (s *StoreConfig) NormalizedURL() string {
	url := strings.TrimRight(s.URL, "/")
	if !strings.HasSuffix(url, "/api/v1") {
		url += "/api/v1"
	}
	return url
}
