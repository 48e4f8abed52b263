package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/littlekj/vaultlink/internal/core"
)

// validateFormat checks that format is "json" or "text".
func validateFormat(format string) error {
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid format: %q (must be json or text)", format)
	}
	return nil
}

func printDiagnoseJSON(w io.Writer, r *core.DiagnoseResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func printDiagnoseText(w io.Writer, r *core.DiagnoseResult) error {
	printIssues := func(label string, issues []core.LinkIssue) {
		for _, issue := range issues {
			fmt.Fprintf(w, "%s: %s: %s\n", label, issue.Note, issue.Raw)
		}
	}
	printIssues("missing", r.Missing)
	printIssues("escaped", r.Escaped)
	printIssues("bad anchor", r.BadAnchors)
	fmt.Fprintln(w, r.Summary())
	return nil
}
