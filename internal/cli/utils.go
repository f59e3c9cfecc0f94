// Package cli provides output formatting for the kaitou command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/kaitou/internal/models"
)

// OutputFormat is the format for query result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteQueryResult writes a query result to w in the given format.
func WriteQueryResult(w io.Writer, result *models.QueryResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		writeQueryResultText(w, result)
		return nil
	}
}

func writeQueryResultText(w io.Writer, result *models.QueryResult) {
	if result.Fallback {
		fmt.Fprintf(w, "\nPredicted answer (unparsed model output): %s\n", result.PredictedAnswer)
	} else {
		fmt.Fprintf(w, "\nPredicted answer: option %s (confidence %.2f)\n", result.PredictedAnswer, result.Confidence)
	}
	if len(result.SupportingQuestions) == 0 {
		return
	}
	fmt.Fprintf(w, "\nSupporting questions (%d, most similar first):\n", len(result.SupportingQuestions))
	for i, sq := range result.SupportingQuestions {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "#%d | distance %.4f\n", i+1, sq.Distance)
		fmt.Fprintf(w, "Q: %s\n", truncate(sq.Question, 300))
		fmt.Fprintf(w, "A: %s\n", sq.Answer)
	}
}

// BuildQuestion joins all positional args with spaces so multi-word
// questions work the same with or without shell quoting.
func BuildQuestion(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
