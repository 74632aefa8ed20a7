package model

import "time"

// MatchHint is the lexical presence signal for one control point in one
// document. Transient: produced by the matcher, consumed by the
// orchestrator, never persisted.
type MatchHint struct {
	ControlPointName string `json:"control_point_name"`
	Found            bool   `json:"found"`
	MatchedSnippet   string `json:"matched_snippet,omitempty"` // Empty when not found
	MatchOffset      int    `json:"match_offset"`              // -1 when not found
}

// VerdictStatus is the per-point extraction outcome.
type VerdictStatus string

const (
	StatusFound     VerdictStatus = "found"
	StatusNotFound  VerdictStatus = "not_found"
	StatusAmbiguous VerdictStatus = "ambiguous"
)

// Confidence classifies how much the two independent signals agreed.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ExtractionVerdict is the final finding for one control point.
// Criticity is copied from the template at extraction time so the result
// stays self-contained. Immutable after creation.
type ExtractionVerdict struct {
	ControlPointName string         `json:"control_point_name"`
	Status           VerdictStatus  `json:"status"`
	Value            string         `json:"value,omitempty"` // Extracted content, empty if none
	Confidence       Confidence     `json:"confidence"`
	Criticity        CriticityLevel `json:"criticity"`
	Comment          string         `json:"comment,omitempty"` // Model justification, informational only
}

// OverallStatus is the document-level compliance verdict.
type OverallStatus string

const (
	OverallCompliant    OverallStatus = "compliant"
	OverallPartial      OverallStatus = "partial"
	OverallNonCompliant OverallStatus = "non_compliant"
)

// ExtractionResult aggregates one analyzed document. Verdicts keep
// template order. Never mutated after construction; corrections produce
// a new result so each run stays auditable.
type ExtractionResult struct {
	TemplateCategory   string              `json:"template_category"`
	DocumentIdentifier string              `json:"document_identifier"`
	AnalyzedAt         time.Time           `json:"analyzed_at"`
	Model              string              `json:"model,omitempty"` // Completion model that produced the answers
	Verdicts           []ExtractionVerdict `json:"verdicts"`
	OverallStatus      OverallStatus       `json:"overall_status"`
}

// CriticalIssues returns the names of critical control points that were
// not cleanly found.
func (r *ExtractionResult) CriticalIssues() []string {
	var issues []string
	for _, v := range r.Verdicts {
		if v.Criticity == CriticityCritical && v.Status != StatusFound {
			issues = append(issues, v.ControlPointName)
		}
	}
	return issues
}

// Counts tallies verdict statuses for summaries.
func (r *ExtractionResult) Counts() (found, notFound, ambiguous int) {
	for _, v := range r.Verdicts {
		switch v.Status {
		case StatusFound:
			found++
		case StatusNotFound:
			notFound++
		case StatusAmbiguous:
			ambiguous++
		}
	}
	return
}

// BatchDocument is one entry in a batch report: either a result or the
// failure that prevented one.
type BatchDocument struct {
	DocumentIdentifier string            `json:"document_identifier"`
	Result             *ExtractionResult `json:"result,omitempty"`
	ErrorKind          string            `json:"error_kind,omitempty"`
	ErrorMessage       string            `json:"error_message,omitempty"`
}

// BatchReport consolidates a batch run. Per-document failures never
// remove sibling entries.
type BatchReport struct {
	StartedAt      time.Time       `json:"started_at"`
	Category       string          `json:"category"`
	Documents      []BatchDocument `json:"documents"`
	Succeeded      int             `json:"succeeded"`
	Failed         int             `json:"failed"`
	Compliant      int             `json:"compliant"`
	Partial        int             `json:"partial"`
	NonCompliant   int             `json:"non_compliant"`
	ConformityRate float64         `json:"conformity_rate"` // Compliant / succeeded, 0..100
	CriticalIssues []string        `json:"critical_issues,omitempty"`
}
