package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/ndelorme/conforma/internal/model"
)

func statusSymbol(s model.VerdictStatus) string {
	switch s {
	case model.StatusFound:
		return "✅"
	case model.StatusAmbiguous:
		return "⚠️"
	default:
		return "❌"
	}
}

// RenderMarkdown renders one result as a Markdown report.
func RenderMarkdown(r *model.ExtractionResult, includeFooter bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Compliance Report: %s\n\n", r.DocumentIdentifier)
	fmt.Fprintf(&b, "- **Category**: %s\n", r.TemplateCategory)
	fmt.Fprintf(&b, "- **Analyzed**: %s\n", r.AnalyzedAt.Format("2006-01-02 15:04 UTC"))
	if r.Model != "" {
		fmt.Fprintf(&b, "- **Model**: %s\n", r.Model)
	}
	fmt.Fprintf(&b, "- **Overall status**: **%s**\n\n", strings.ToUpper(string(r.OverallStatus)))

	b.WriteString("## Control Points\n\n")
	b.WriteString("| | Control point | Criticity | Status | Confidence | Value |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, v := range r.Verdicts {
		value := v.Value
		if value == "" {
			value = "—"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			statusSymbol(v.Status), v.ControlPointName, v.Criticity, v.Status, v.Confidence, escapePipes(value))
	}

	if issues := r.CriticalIssues(); len(issues) > 0 {
		b.WriteString("\n## Critical Issues\n\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}

	var comments []model.ExtractionVerdict
	for _, v := range r.Verdicts {
		if v.Comment != "" && v.Status != model.StatusFound {
			comments = append(comments, v)
		}
	}
	if len(comments) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, v := range comments {
			fmt.Fprintf(&b, "- **%s**: %s\n", v.ControlPointName, v.Comment)
		}
	}

	if includeFooter {
		b.WriteString("\n---\n*Generated by conforma. Low-confidence verdicts mean the lexical scan and the AI extraction disagreed; review those manually.*\n")
	}

	return b.String()
}

// WriteMarkdown writes the Markdown report to a file.
func WriteMarkdown(r *model.ExtractionResult, includeFooter bool, path string) error {
	if err := os.WriteFile(path, []byte(RenderMarkdown(r, includeFooter)), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderBatchMarkdown renders a consolidated batch report.
func RenderBatchMarkdown(batch *model.BatchReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Batch Compliance Report (%s)\n\n", batch.Category)
	fmt.Fprintf(&b, "- **Documents**: %d (%d succeeded, %d failed)\n",
		len(batch.Documents), batch.Succeeded, batch.Failed)
	fmt.Fprintf(&b, "- **Compliant**: %d · **Partial**: %d · **Non-compliant**: %d\n",
		batch.Compliant, batch.Partial, batch.NonCompliant)
	fmt.Fprintf(&b, "- **Conformity rate**: %.1f%%\n\n", batch.ConformityRate)

	b.WriteString("| Document | Outcome |\n|---|---|\n")
	for _, doc := range batch.Documents {
		if doc.Result != nil {
			fmt.Fprintf(&b, "| %s | %s |\n", doc.DocumentIdentifier, doc.Result.OverallStatus)
		} else {
			fmt.Fprintf(&b, "| %s | failed (%s) |\n", doc.DocumentIdentifier, doc.ErrorKind)
		}
	}

	if len(batch.CriticalIssues) > 0 {
		b.WriteString("\n## Critical Issues Across Batch\n\n")
		for _, issue := range batch.CriticalIssues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}

	return b.String()
}

// escapePipes keeps extracted values from breaking the table layout.
func escapePipes(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
