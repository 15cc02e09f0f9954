// barterctl is a CLI tool for working with barter-qween offline.
//
// Usage:
//
//	barterctl score -a offered.yaml -b requested.yaml
//	barterctl preview -f event.yaml
//	barterctl token --user alice
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	outputFmt string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "barterctl",
		Short: "Score barter pairs and preview notifications",
		Long: `barterctl scores item pairs with the same rules the API uses,
renders the push notification an event would produce, and mints
development tokens for the API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json, yaml")

	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(tokenCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
