package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/manager"
	"github.com/ternarybob/colligo/internal/models"
	badgerstore "github.com/ternarybob/colligo/internal/storage/badger"
	"github.com/ternarybob/colligo/internal/webui"
)

// loadConfig resolves configuration from defaults, config files and the
// environment, then initializes the logger.
func loadConfig() (*common.Config, arbor.ILogger, error) {
	paths := configFiles
	if len(paths) == 0 {
		if _, err := os.Stat("colligo.toml"); err == nil {
			paths = []string{"colligo.toml"}
		}
	}

	config, err := common.LoadFromFiles(paths...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := common.InitLogger(config)
	return config, logger, nil
}

// newManager wires the knowledge-store client, the optional sync-state
// store and the reconciliation engine. The returned closer releases the
// state store; it is safe to call when no store was opened.
func newManager(config *common.Config, logger arbor.ILogger) (*manager.Manager, func(), error) {
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	timeout, err := config.Store.RequestTimeout()
	if err != nil {
		return nil, nil, err
	}

	client := webui.NewClient(config.Store.APIKey,
		webui.WithBaseURL(config.Store.URL),
		webui.WithLogger(logger),
		webui.WithRateLimit(config.Store.RateLimit),
		webui.WithUserAPIKey(config.Store.UserAPIKey),
		webui.WithHTTPClient(&http.Client{Timeout: timeout}),
	)

	closer := func() {}
	opts := []manager.Option{}

	if config.Storage.Badger.Enabled {
		db, err := badgerstore.NewBadgerDB(logger, &config.Storage.Badger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sync-state store: %w", err)
		}
		opts = append(opts, manager.WithSyncState(badgerstore.NewSyncStorage(db, logger)))
		closer = func() {
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close sync-state store")
			}
		}
	}

	mgr, err := manager.New(client, config.Sync.BatchSize, logger, opts...)
	if err != nil {
		closer()
		return nil, nil, err
	}

	return mgr, closer, nil
}

// printResults writes per-item outcomes to stdout and returns how many
// items failed.
func printResults(results []models.OperationResult) int {
	failed := 0
	for _, r := range results {
		if r.Success {
			fmt.Printf("  ok    %s\n", r.Identifier)
			continue
		}
		failed++
		fmt.Printf("  fail  %s: %s\n", r.Identifier, r.Error)
	}
	return failed
}
