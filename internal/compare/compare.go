// Package compare diffs two extraction runs of the same template
// category, typically two revisions of a supplier datasheet.
package compare

import (
	"fmt"

	"github.com/ndelorme/conforma/internal/model"
)

// Difference is one control point whose verdict changed between runs.
type Difference struct {
	ControlPointName string               `json:"control_point_name"`
	OldStatus        model.VerdictStatus  `json:"old_status"`
	NewStatus        model.VerdictStatus  `json:"new_status"`
	OldValue         string               `json:"old_value,omitempty"`
	NewValue         string               `json:"new_value,omitempty"`
	Criticity        model.CriticityLevel `json:"criticity"`
}

// Comparison summarizes what changed between two runs.
type Comparison struct {
	Category       string              `json:"category"`
	OldDocument    string              `json:"old_document"`
	NewDocument    string              `json:"new_document"`
	OldOverall     model.OverallStatus `json:"old_overall"`
	NewOverall     model.OverallStatus `json:"new_overall"`
	OverallChanged bool                `json:"overall_changed"`
	Differences    []Difference        `json:"differences"`
}

// Results compares two extraction results of the same category. Neither
// input is modified; a comparison is a new value, keeping both runs
// auditable.
func Results(oldRun, newRun *model.ExtractionResult) (*Comparison, error) {
	if oldRun.TemplateCategory != newRun.TemplateCategory {
		return nil, fmt.Errorf("cannot compare across categories: %q vs %q",
			oldRun.TemplateCategory, newRun.TemplateCategory)
	}

	newByName := make(map[string]model.ExtractionVerdict, len(newRun.Verdicts))
	for _, v := range newRun.Verdicts {
		newByName[v.ControlPointName] = v
	}

	cmp := &Comparison{
		Category:       oldRun.TemplateCategory,
		OldDocument:    oldRun.DocumentIdentifier,
		NewDocument:    newRun.DocumentIdentifier,
		OldOverall:     oldRun.OverallStatus,
		NewOverall:     newRun.OverallStatus,
		OverallChanged: oldRun.OverallStatus != newRun.OverallStatus,
	}

	for _, oldV := range oldRun.Verdicts {
		newV, ok := newByName[oldV.ControlPointName]
		if !ok {
			continue
		}
		if oldV.Status != newV.Status || oldV.Value != newV.Value {
			cmp.Differences = append(cmp.Differences, Difference{
				ControlPointName: oldV.ControlPointName,
				OldStatus:        oldV.Status,
				NewStatus:        newV.Status,
				OldValue:         oldV.Value,
				NewValue:         newV.Value,
				Criticity:        oldV.Criticity,
			})
		}
	}

	return cmp, nil
}
