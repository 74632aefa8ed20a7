package match

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ndelorme/conforma/internal/model"
)

func testTemplate() *model.DocumentTemplate {
	return &model.DocumentTemplate{
		Name:     "Test",
		Category: "test",
		ControlPoints: []model.ControlPoint{
			{Name: "Allergen Declaration", Criticity: model.CriticityCritical, Synonyms: []string{"allergènes", "allergenes"}},
			{Name: "Storage", Criticity: model.CriticityMajor, Synonyms: []string{"température de conservation"}},
			{Name: "Supplier", Criticity: model.CriticityMinor, Synonyms: []string{"fournisseur"}},
		},
	}
}

func TestMatcher_OneHintPerPointInTemplateOrder(t *testing.T) {
	m := NewMatcher()
	tmpl := testTemplate()

	hints := m.Match(tmpl, "some text with température de conservation only")

	if len(hints) != len(tmpl.ControlPoints) {
		t.Fatalf("Expected %d hints, got %d", len(tmpl.ControlPoints), len(hints))
	}
	for i, cp := range tmpl.ControlPoints {
		if hints[i].ControlPointName != cp.Name {
			t.Errorf("Hint %d: expected %q, got %q", i, cp.Name, hints[i].ControlPointName)
		}
	}
}

func TestMatcher_VerbatimSynonymFound(t *testing.T) {
	m := NewMatcher()
	hints := m.Match(testTemplate(), "Liste des allergènes: gluten")

	if !hints[0].Found {
		t.Fatal("Expected allergen hint found=true")
	}
	if hints[0].MatchOffset < 0 {
		t.Errorf("Expected non-negative offset, got %d", hints[0].MatchOffset)
	}
	if hints[0].MatchedSnippet == "" {
		t.Error("Expected non-empty snippet")
	}
}

func TestMatcher_DiacriticsInsensitive(t *testing.T) {
	m := NewMatcher()

	// OCR frequently drops accents; the accented synonym must still match.
	hints := m.Match(testTemplate(), "liste des allergenes : gluten, lait")
	if !hints[0].Found {
		t.Error("Expected unaccented text to match accented synonym")
	}

	hints = m.Match(testTemplate(), "TEMPÉRATURE   DE\nCONSERVATION : +4°C")
	if !hints[1].Found {
		t.Error("Expected case/whitespace variants to match")
	}
}

func TestMatcher_EmptyText(t *testing.T) {
	m := NewMatcher()
	hints := m.Match(testTemplate(), "")

	if len(hints) != 3 {
		t.Fatalf("Expected 3 hints, got %d", len(hints))
	}
	for _, h := range hints {
		if h.Found {
			t.Errorf("Expected found=false for %s", h.ControlPointName)
		}
		if h.MatchedSnippet != "" {
			t.Errorf("Expected empty snippet for %s", h.ControlPointName)
		}
		if h.MatchOffset != -1 {
			t.Errorf("Expected offset -1 for %s, got %d", h.ControlPointName, h.MatchOffset)
		}
	}
}

func TestMatcher_NoMatch(t *testing.T) {
	m := NewMatcher()
	hints := m.Match(testTemplate(), "completely unrelated electronics text")

	if hints[0].Found {
		t.Error("Expected allergen hint found=false")
	}
}

func TestMatcher_EarliestOffsetAcrossSynonyms(t *testing.T) {
	tmpl := &model.DocumentTemplate{
		Category: "test",
		ControlPoints: []model.ControlPoint{
			{Name: "Point", Synonyms: []string{"late marker", "early"}},
		},
	}

	hints := NewMatcher().Match(tmpl, "early text then the late marker")
	if !hints[0].Found {
		t.Fatal("Expected a match")
	}
	if hints[0].MatchOffset != 0 {
		t.Errorf("Expected earliest synonym offset 0, got %d", hints[0].MatchOffset)
	}
}

func TestMatcher_TieBreakPrefersLongestSynonym(t *testing.T) {
	tmpl := &model.DocumentTemplate{
		Category: "test",
		ControlPoints: []model.ControlPoint{
			{Name: "Point", Synonyms: []string{"storage", "storage temperature"}},
		},
	}

	hints := NewMatcher().Match(tmpl, "storage temperature: -18C")
	if !hints[0].Found {
		t.Fatal("Expected a match")
	}
	// Both synonyms match at offset 0; the snippet must start with the
	// longer, more specific one fully inside it.
	if got := hints[0].MatchedSnippet; len(got) < len("storage temperature") {
		t.Errorf("Expected snippet covering the longest synonym, got %q", got)
	}
}

func TestMatcher_ShortSynonymsNeedTokenBoundaries(t *testing.T) {
	tmpl := &model.DocumentTemplate{
		Category: "test",
		ControlPoints: []model.ControlPoint{
			{Name: "Estampille", Synonyms: []string{"FR"}},
		},
	}
	m := NewMatcher()

	// "fr" inside "france" must not count
	hints := m.Match(tmpl, "produit de france metropolitaine")
	if hints[0].Found {
		t.Error("Expected no match for FR inside another word")
	}

	hints = m.Match(tmpl, "estampille: fr 12.345.678 ce")
	if !hints[0].Found {
		t.Error("Expected match for FR as a standalone token")
	}
}

func TestMatcher_SnippetStaysValidUTF8(t *testing.T) {
	tmpl := &model.DocumentTemplate{
		Category: "test",
		ControlPoints: []model.ControlPoint{
			{Name: "Storage", Synonyms: []string{"conservation"}},
		},
	}

	// Place a multi-byte rune ("°" survives diacritic stripping) right
	// where the 80-byte snippet cut lands.
	text := "conservation " + strings.Repeat("x", 66) + "°C et plus de texte ensuite"
	hints := NewMatcher().Match(tmpl, text)

	if !hints[0].Found {
		t.Fatal("Expected a match")
	}
	if !utf8.ValidString(hints[0].MatchedSnippet) {
		t.Errorf("Snippet is not valid UTF-8: %q", hints[0].MatchedSnippet)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Température", "temperature"},
		{"  A   B\t\nC ", "a b c"},
		{"Dénomination Légale", "denomination legale"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
