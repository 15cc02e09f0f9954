package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/qween-code/barter-qween/internal/matching"
	"github.com/qween-code/barter-qween/internal/types"
)

var (
	offeredFile   string
	requestedFile string
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an offered item against a requested item",
		Long: `Compute the compatibility verdict for two items stored as YAML or JSON.

Examples:
  # Score two item files
  barterctl score -a bike.yaml -b guitar.yaml

  # Full verdict as JSON
  barterctl score -a bike.yaml -b guitar.yaml -o json`,
		RunE: runScore,
	}

	cmd.Flags().StringVarP(&offeredFile, "offered", "a", "", "Offered item file (required)")
	cmd.Flags().StringVarP(&requestedFile, "requested", "b", "", "Requested item file (required)")
	_ = cmd.MarkFlagRequired("offered")
	_ = cmd.MarkFlagRequired("requested")

	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	offered, err := readItem(offeredFile)
	if err != nil {
		return err
	}
	requested, err := readItem(requestedFile)
	if err != nil {
		return err
	}

	result := ScoreResult{
		OfferedItemID:   offered.ID,
		RequestedItemID: requested.ID,
		Verdict:         matching.Evaluate(offered, requested),
	}
	return outputResult(cmd.OutOrStdout(), result, outputFmt)
}

func readItem(path string) (types.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Item{}, fmt.Errorf("failed to read item: %w", err)
	}
	var it types.Item
	if err := yaml.Unmarshal(data, &it); err != nil {
		return types.Item{}, fmt.Errorf("failed to parse item %s: %w", path, err)
	}
	return it, nil
}
