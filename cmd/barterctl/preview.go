package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/qween-code/barter-qween/internal/notifier"
	"github.com/qween-code/barter-qween/internal/types"
)

var previewFile string

func previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the push notification for an event without sending it",
		Long: `Read an event envelope ({kind, event}) from YAML or JSON and print the
notification title, body and data payload the dispatcher would send.

Examples:
  barterctl preview -f trade-accepted.yaml`,
		RunE: runPreview,
	}

	cmd.Flags().StringVarP(&previewFile, "filename", "f", "", "Event file (required)")
	_ = cmd.MarkFlagRequired("filename")

	return cmd
}

func runPreview(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(previewFile)
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("failed to parse event %s: %w", previewFile, err)
	}
	e, err := types.UnmarshalEvent(raw)
	if err != nil {
		return fmt.Errorf("failed to decode event %s: %w", previewFile, err)
	}

	msg, err := notifier.BuildMessage(e)
	if err != nil {
		return err
	}

	result := PreviewResult{
		Event: e.Kind(),
		Title: msg.Notification.Title,
		Body:  msg.Notification.Body,
		Data:  msg.Data,
	}
	return outputResult(cmd.OutOrStdout(), result, outputFmt)
}
