package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ndelorme/conforma/internal/model"
)

// snippetLen bounds the evidence excerpt recorded on a hint.
const snippetLen = 80

// shortSynonymRunes: synonyms at or below this length only match as
// whole tokens, otherwise abbreviations like "FR" or "CE" hit inside
// unrelated words.
const shortSynonymRunes = 3

// Matcher locates lexical evidence for each control point of a template.
// It is deterministic and independent of any completion call, which is
// what lets the orchestrator catch hallucinated or missed fields.
type Matcher struct{}

// NewMatcher creates a matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match produces one hint per control point, in template order. Offsets
// and snippets refer to the normalized form of text. Empty text yields
// all hints found=false without error.
func (m *Matcher) Match(t *model.DocumentTemplate, text string) []model.MatchHint {
	normText := Normalize(text)

	hints := make([]model.MatchHint, 0, len(t.ControlPoints))
	for _, cp := range t.ControlPoints {
		hints = append(hints, matchPoint(cp, normText))
	}
	return hints
}

// matchPoint searches every synonym (and the point name itself) and
// keeps the earliest offset. Ties at the same offset prefer the longest
// synonym, the more specific one.
func matchPoint(cp model.ControlPoint, normText string) model.MatchHint {
	hint := model.MatchHint{
		ControlPointName: cp.Name,
		MatchOffset:      -1,
	}
	if normText == "" {
		return hint
	}

	candidates := make([]string, 0, len(cp.Synonyms)+1)
	candidates = append(candidates, cp.Name)
	candidates = append(candidates, cp.Synonyms...)

	bestOffset := -1
	bestLen := 0
	for _, syn := range candidates {
		normSyn := Normalize(syn)
		if normSyn == "" {
			continue
		}

		offset := findOccurrence(normText, normSyn)
		if offset < 0 {
			continue
		}
		if bestOffset == -1 || offset < bestOffset || (offset == bestOffset && len(normSyn) > bestLen) {
			bestOffset = offset
			bestLen = len(normSyn)
		}
	}

	if bestOffset >= 0 {
		hint.Found = true
		hint.MatchOffset = bestOffset
		hint.MatchedSnippet = snippet(normText, bestOffset)
	}
	return hint
}

// findOccurrence returns the first index of syn in text, or -1. Short
// synonyms must sit on token boundaries.
func findOccurrence(text, syn string) int {
	if len([]rune(syn)) > shortSynonymRunes {
		return strings.Index(text, syn)
	}

	for start := 0; start < len(text); {
		idx := strings.Index(text[start:], syn)
		if idx < 0 {
			return -1
		}
		abs := start + idx
		if isTokenBoundary(text, abs, abs+len(syn)) {
			return abs
		}
		start = abs + 1
	}
	return -1
}

// isTokenBoundary reports whether text[from:to] is not flanked by
// letters or digits.
func isTokenBoundary(text string, from, to int) bool {
	if from > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:from])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if to < len(text) {
		r, _ := utf8.DecodeRuneInString(text[to:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// snippet extracts up to snippetLen bytes of context from the match,
// never cutting through a multi-byte rune.
func snippet(text string, offset int) string {
	end := offset + snippetLen
	if end >= len(text) {
		end = len(text)
	} else {
		for end > offset && !utf8.RuneStart(text[end]) {
			end--
		}
	}
	return strings.TrimSpace(text[offset:end])
}
