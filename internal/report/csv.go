package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/ndelorme/conforma/internal/model"
)

// RenderCSV renders one row per control point, for spreadsheet review.
func RenderCSV(r *model.ExtractionResult) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{"document", "control_point", "criticity", "status", "confidence", "value", "comment"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for _, v := range r.Verdicts {
		row := []string{
			r.DocumentIdentifier,
			v.ControlPointName,
			v.Criticity.String(),
			string(v.Status),
			string(v.Confidence),
			v.Value,
			v.Comment,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteCSV writes the CSV report to a file.
func WriteCSV(r *model.ExtractionResult, path string) error {
	data, err := RenderCSV(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
