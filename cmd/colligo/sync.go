package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ternarybob/colligo/internal/common"
)

func newSyncCmd() *cobra.Command {
	var (
		kbName        string
		kbDescription string
	)

	cmd := &cobra.Command{
		Use:   "sync <manifest.toml>",
		Short: "Add manifest documents to a knowledge base",
		Long: `Uploads the documents listed in the manifest and attaches them to the
named knowledge base, creating it when missing. Documents whose URL is
already attached are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := loadConfig()
			if err != nil {
				return err
			}

			common.PrintBanner(common.GetVersion())

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

			knowledgeID, err := mgr.EnsureKnowledge(ctx, kbName, kbDescription, nil, nil)
			if err != nil {
				return err
			}

			logger.Info().
				Str("knowledge_id", knowledgeID).
				Int("documents", len(docs)).
				Msg("Starting sync")

			results, err := mgr.AddDocuments(ctx, knowledgeID, docs)
			if err != nil {
				return err
			}

			fmt.Printf("Synced %d of %d documents into %s:\n", len(results), len(docs), kbName)
			if failed := printResults(results); failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kbName, "kb-name", "", "Knowledge base name (created when missing)")
	cmd.Flags().StringVar(&kbDescription, "kb-description", "", "Description used when creating the knowledge base")
	cmd.MarkFlagRequired("kb-name")

	return cmd
}
