package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ternarybob/colligo/internal/common"
)

var configFiles []string

func main() {
	// .env is optional; real environment variables win either way
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "colligo",
		Short: "Reconcile local documents with a remote knowledge store",
		Long: `Colligo keeps a set of local documents in sync with an Open WebUI
compatible knowledge store. Documents are identified by their external
URL: adds are deduplicated, updates replace the remote file in place,
and every multi-item operation reports a per-item outcome.`,
	}

	rootCmd.PersistentFlags().StringArrayVarP(&configFiles, "config", "c", nil,
		"Configuration file path (can be specified multiple times, later files override earlier ones)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newKBCmd(),
		newSyncCmd(),
		newUpdateCmd(),
		newRemoveCmd(),
		newQueryCmd(),
		newStatusCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("colligo %s\n", common.GetFullVersion())
		},
	}
}
