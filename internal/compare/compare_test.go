package compare

import (
	"testing"
	"time"

	"github.com/ndelorme/conforma/internal/model"
)

func run(doc string, overall model.OverallStatus, verdicts ...model.ExtractionVerdict) *model.ExtractionResult {
	return &model.ExtractionResult{
		TemplateCategory:   "agro",
		DocumentIdentifier: doc,
		AnalyzedAt:         time.Now().UTC(),
		OverallStatus:      overall,
		Verdicts:           verdicts,
	}
}

func TestResults_NoChanges(t *testing.T) {
	v := model.ExtractionVerdict{
		ControlPointName: "allergenes",
		Status:           model.StatusFound,
		Value:            "gluten",
		Criticity:        model.CriticityCritical,
	}

	cmp, err := Results(
		run("v1.png", model.OverallCompliant, v),
		run("v2.png", model.OverallCompliant, v),
	)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if cmp.OverallChanged {
		t.Error("overall flagged as changed")
	}
	if len(cmp.Differences) != 0 {
		t.Errorf("got %d differences, want 0", len(cmp.Differences))
	}
}

func TestResults_DetectsChanges(t *testing.T) {
	oldRun := run("v1.png", model.OverallCompliant,
		model.ExtractionVerdict{ControlPointName: "allergenes", Status: model.StatusFound, Value: "gluten", Criticity: model.CriticityCritical},
		model.ExtractionVerdict{ControlPointName: "ddm", Status: model.StatusFound, Value: "12 mois", Criticity: model.CriticityMajor},
	)
	newRun := run("v2.png", model.OverallNonCompliant,
		model.ExtractionVerdict{ControlPointName: "allergenes", Status: model.StatusNotFound, Criticity: model.CriticityCritical},
		model.ExtractionVerdict{ControlPointName: "ddm", Status: model.StatusFound, Value: "18 mois", Criticity: model.CriticityMajor},
	)

	cmp, err := Results(oldRun, newRun)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if !cmp.OverallChanged {
		t.Error("overall change not flagged")
	}
	if len(cmp.Differences) != 2 {
		t.Fatalf("got %d differences, want 2", len(cmp.Differences))
	}

	first := cmp.Differences[0]
	if first.ControlPointName != "allergenes" ||
		first.OldStatus != model.StatusFound ||
		first.NewStatus != model.StatusNotFound {
		t.Errorf("allergenes diff = %+v", first)
	}
	second := cmp.Differences[1]
	if second.OldValue != "12 mois" || second.NewValue != "18 mois" {
		t.Errorf("ddm diff = %+v", second)
	}
}

func TestResults_CategoryMismatch(t *testing.T) {
	oldRun := run("v1.png", model.OverallCompliant)
	newRun := run("v2.png", model.OverallCompliant)
	newRun.TemplateCategory = "chimie"

	if _, err := Results(oldRun, newRun); err == nil {
		t.Error("cross-category comparison accepted")
	}
}
