package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	badgerstore "github.com/ternarybob/colligo/internal/storage/badger"
)

func newStatusCmd() *cobra.Command {
	var (
		kbID  string
		runID string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recent sync runs for a knowledge base",
		Long: `Reads the local sync-state store and prints run history and the
URL-to-file-id index for a knowledge base. Local state is advisory;
the remote store remains the source of truth.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := loadConfig()
			if err != nil {
				return err
			}

			if !config.Storage.Badger.Enabled {
				return fmt.Errorf("sync-state store is disabled (storage.badger.enabled = false)")
			}

			db, err := badgerstore.NewBadgerDB(logger, &config.Storage.Badger)
			if err != nil {
				return fmt.Errorf("failed to open sync-state store: %w", err)
			}
			state := badgerstore.NewSyncStorage(db, logger)
			defer state.Close()

			ctx := context.Background()

			if runID != "" {
				run, err := state.GetRun(ctx, runID)
				if err != nil {
					return err
				}
				fmt.Printf("%s  %s  started %s  ok=%d fail=%d skipped=%d\n",
					run.ID,
					run.Operation,
					run.StartedAt.Format("2006-01-02 15:04:05"),
					run.Succeeded,
					run.Failed,
					len(run.SkippedURLs),
				)
				printResults(run.Results)
				return nil
			}

			runs, err := state.ListRuns(ctx, kbID, limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Printf("No recorded runs for knowledge base %s\n", kbID)
				return nil
			}

			for _, run := range runs {
				fmt.Printf("%s  %-6s  ok=%d fail=%d skipped=%d  %s\n",
					run.StartedAt.Format("2006-01-02 15:04:05"),
					run.Operation,
					run.Succeeded,
					run.Failed,
					len(run.SkippedURLs),
					run.ID,
				)
			}

			index, err := state.ListFileIDs(ctx, kbID)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d tracked URLs\n", len(index))
			return nil
		},
	}

	cmd.Flags().StringVar(&kbID, "kb-id", "", "Knowledge base id")
	cmd.Flags().StringVar(&runID, "run-id", "", "Show per-item results for a single run")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum runs to show (0 = all)")
	cmd.MarkFlagRequired("kb-id")

	return cmd
}
