// Package report renders extraction results for operators. Writers are
// format-agnostic consumers of the result model only: nothing in here
// reaches back into templates, matching or extraction.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ndelorme/conforma/internal/model"
)

// RenderJSON serializes one result.
func RenderJSON(r *model.ExtractionResult) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteJSON writes one result to a file.
func WriteJSON(r *model.ExtractionResult, path string) error {
	data, err := RenderJSON(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteBatchJSON writes a consolidated batch report to a file.
func WriteBatchJSON(b *model.BatchReport, path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write batch report: %w", err)
	}
	return nil
}

// Summary prints a short per-document overview, for verbose CLI output.
func Summary(w io.Writer, r *model.ExtractionResult) {
	found, notFound, ambiguous := r.Counts()

	fmt.Fprintf(w, "Document: %s (%s)\n", r.DocumentIdentifier, r.TemplateCategory)
	fmt.Fprintf(w, "Overall:  %s\n", r.OverallStatus)
	fmt.Fprintf(w, "Points:   %d found, %d not found, %d ambiguous\n", found, notFound, ambiguous)

	if issues := r.CriticalIssues(); len(issues) > 0 {
		fmt.Fprintf(w, "Critical issues:\n")
		for _, issue := range issues {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
	}
}
