package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/qween-code/barter-qween/internal/types"
)

// ScoreResult is the result of a score command.
type ScoreResult struct {
	OfferedItemID   string             `json:"offeredItemId"`
	RequestedItemID string             `json:"requestedItemId"`
	Verdict         types.MatchVerdict `json:"verdict"`
}

// PreviewResult is the result of a preview command.
type PreviewResult struct {
	Event types.EventKind   `json:"event"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// TokenResult is the result of a token command.
type TokenResult struct {
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// outputResult outputs the result in the specified format.
func outputResult(w io.Writer, result any, format string) error {
	switch format {
	case "json":
		return outputJSON(w, result)
	case "yaml":
		return outputYAML(w, result)
	case "table", "":
		return outputTable(w, result)
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

func outputJSON(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputYAML(w io.Writer, result any) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func outputTable(out io.Writer, result any) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	switch r := result.(type) {
	case ScoreResult:
		return outputScoreTable(w, r)
	case PreviewResult:
		return outputPreviewTable(w, r)
	case TokenResult:
		fmt.Fprintf(w, "USER:\t%s\n", r.UserID)
		fmt.Fprintf(w, "EXPIRES:\t%s\n", r.ExpiresAt.Format(time.RFC3339))
		fmt.Fprintf(w, "TOKEN:\t%s\n", r.Token)
		return nil
	default:
		return outputJSON(out, result)
	}
}

func outputScoreTable(w *tabwriter.Writer, r ScoreResult) error {
	v := r.Verdict
	status := "NO MATCH"
	if v.IsMatch {
		status = "MATCH"
	}

	fmt.Fprintf(w, "OFFERED:\t%s\n", r.OfferedItemID)
	fmt.Fprintf(w, "REQUESTED:\t%s\n", r.RequestedItemID)
	fmt.Fprintf(w, "RESULT:\t%s (%d/100)\n", status, v.CompatibilityScore)
	fmt.Fprintf(w, "REASON:\t%s\n", v.Reason)
	if v.SuggestedCashDifferential != nil && v.SuggestedPaymentDirection != nil {
		fmt.Fprintf(w, "CASH:\t%.0f (%s)\n", *v.SuggestedCashDifferential, *v.SuggestedPaymentDirection)
	}

	fmt.Fprintln(w, "\nCOMPONENT\tSCORE\tMAX")
	fmt.Fprintf(w, "value\t%d\t50\n", v.Breakdown.Value)
	fmt.Fprintf(w, "category\t%d\t20\n", v.Breakdown.Category)
	fmt.Fprintf(w, "condition\t%d\t15\n", v.Breakdown.Condition)
	fmt.Fprintf(w, "location\t%d\t15\n", v.Breakdown.Location)
	return nil
}

func outputPreviewTable(w *tabwriter.Writer, r PreviewResult) error {
	fmt.Fprintf(w, "EVENT:\t%s\n", r.Event)
	fmt.Fprintf(w, "TITLE:\t%s\n", r.Title)
	fmt.Fprintf(w, "BODY:\t%s\n", r.Body)

	if len(r.Data) > 0 {
		keys := make([]string, 0, len(r.Data))
		for k := range r.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(w, "\nDATA KEY\tVALUE")
		for _, k := range keys {
			fmt.Fprintf(w, "%s\t%s\n", k, r.Data[k])
		}
	}
	return nil
}
