package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var (
		kbNames []string
		topK    int
		asUser  bool
	)

	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Run a retrieval query against one or more knowledge bases",
		Long: `Queries the store's retrieval endpoint across the named knowledge
bases. With --as-user the restricted end-user token is used, so the
store applies that user's access filtering.`,
		Args: cobra.ExactArgs(1),
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

			knowledgeIDs := make([]string, 0, len(kbNames))
			for _, name := range kbNames {
				id, err := mgr.LookupKnowledge(ctx, name)
				if err != nil {
					return err
				}
				knowledgeIDs = append(knowledgeIDs, id)
			}

			response, err := mgr.Query(ctx, knowledgeIDs, args[0], topK, asUser)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(response)
		},
	}

	cmd.Flags().StringArrayVar(&kbNames, "kb-name", nil, "Knowledge base name (repeatable)")
	cmd.Flags().IntVar(&topK, "top-k", 5, "Number of results to return")
	cmd.Flags().BoolVar(&asUser, "as-user", false, "Query with the restricted end-user token")
	cmd.MarkFlagRequired("kb-name")

	return cmd
}
