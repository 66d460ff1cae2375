package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newKBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Manage knowledge bases",
	}

	cmd.AddCommand(newKBCreateCmd(), newKBDeleteCmd(), newKBListCmd())

	return cmd
}

func newKBCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a knowledge base if it does not exist",
		Args:  cobra.ExactArgs(1),
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

			knowledgeID, err := mgr.EnsureKnowledge(context.Background(), args[0], description, nil, nil)
			if err != nil {
				return err
			}

			fmt.Println(knowledgeID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Knowledge base description")

	return cmd
}

func newKBDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a knowledge base",
		Args:  cobra.ExactArgs(1),
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

			knowledgeID, err := mgr.LookupKnowledge(ctx, args[0])
			if err != nil {
				return err
			}

			result := mgr.DeleteKnowledge(ctx, knowledgeID)
			if !result.Success {
				return fmt.Errorf("failed to delete %s: %s", args[0], result.Error)
			}

			fmt.Printf("Deleted %s (%s)\n", args[0], knowledgeID)
			return nil
		},
	}
}

func newKBListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List knowledge bases",
		Args:  cobra.NoArgs,
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

			bases, err := mgr.ListKnowledge(context.Background())
			if err != nil {
				return err
			}

			for _, kb := range bases {
				fmt.Printf("%s  %s\n", kb.ID, kb.Name)
			}
			return nil
		},
	}
}
