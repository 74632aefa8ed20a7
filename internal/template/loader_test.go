package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ndelorme/conforma/internal/model"
)

const yamlTemplate = `name: Fiche Textile
description: Textile product datasheet
category: textile
control_points:
  - name: Composition textile
    description: Fiber composition
    criticity: critical
    synonyms: ["Fibres", "Matière", "Composition"]
  - name: Entretien
    description: Care instructions
    criticity: minor
    synonyms: ["Lavage", "Care"]
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "textile.yaml")
	if err := os.WriteFile(path, []byte(yamlTemplate), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tmpl, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if tmpl.Category != "textile" {
		t.Errorf("Expected category textile, got %s", tmpl.Category)
	}
	if len(tmpl.ControlPoints) != 2 {
		t.Fatalf("Expected 2 control points, got %d", len(tmpl.ControlPoints))
	}
	if tmpl.ControlPoints[0].Criticity != model.CriticityCritical {
		t.Errorf("Expected critical criticity, got %s", tmpl.ControlPoints[0].Criticity)
	}
	if tmpl.ControlPoints[1].Criticity != model.CriticityMinor {
		t.Errorf("Expected minor criticity, got %s", tmpl.ControlPoints[1].Criticity)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "textile.yaml"), []byte(yamlTemplate), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	// Non-template files are skipped
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := NewRegistry()
	if err := LoadDir(r, dir); err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	if _, err := r.Get("textile"); err != nil {
		t.Errorf("Expected textile template registered, got %v", err)
	}
}

func TestLoadDir_MissingDirIsNotAnError(t *testing.T) {
	r := NewRegistry()
	if err := LoadDir(r, filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Errorf("Expected nil for missing dir, got %v", err)
	}
}
