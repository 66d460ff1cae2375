package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	var kbName string

	cmd := &cobra.Command{
		Use:   "update <manifest.toml>",
		Short: "Replace manifest documents already in a knowledge base",
		Long: `For each manifest document, removes the remote file carrying the same
URL and re-uploads the new version. Documents not present remotely are
reported as failures, not added.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := loadConfig()
			if err != nil {
				return err
			}

			docs, err := loadManifest(args[0])
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

			results, err := mgr.UpdateDocuments(ctx, knowledgeID, docs)
			if err != nil {
				return err
			}

			fmt.Printf("Updated %d documents in %s:\n", len(results), kbName)
			if failed := printResults(results); failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kbName, "kb-name", "", "Knowledge base name")
	cmd.MarkFlagRequired("kb-name")

	return cmd
}
