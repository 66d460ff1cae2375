package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	var kbName string

	cmd := &cobra.Command{
		Use:   "remove <file-id> [file-id...]",
		Short: "Remove files from a knowledge base by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := loadConfig()
			if err != nil {
				return err
			}

			mgr, closer, err := newManager(config, logger)
			if err != nil {
				return err
			}
			defer closer()

			ctx := context.Background()

			knowledgeID, err := mgr.LookupKnowledge(ctx, kbName)
			if err != nil {
				return err
			}

			results := mgr.RemoveFiles(ctx, knowledgeID, args)

			fmt.Printf("Removed %d files from %s:\n", len(results), kbName)
			if failed := printResults(results); failed > 0 {
				return fmt.Errorf("%d of %d removals failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kbName, "kb-name", "", "Knowledge base name")
	cmd.MarkFlagRequired("kb-name")

	return cmd
}
