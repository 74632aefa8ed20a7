package extract

import (
	"fmt"
	"strings"

	"github.com/ndelorme/conforma/internal/model"
)

// systemMessage frames the assistant as a JSON-only extraction engine.
const systemMessage = "You are a technical-document compliance analyst. " +
	"You respond with valid JSON only, no prose, no markdown fences."

// BuildPrompt constructs the single extraction prompt for a document.
// All control points are batched into one call to bound latency and
// cost; the response must be keyed by control-point name so parsing can
// verify completeness.
func BuildPrompt(t *model.DocumentTemplate, text string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the following %s (category: %s).\n", t.Name, t.Category)
	fmt.Fprintf(&b, "%s\n\n", t.Description)

	b.WriteString("## CONTROL POINTS TO VERIFY\n\n")
	for i, cp := range t.ControlPoints {
		synonyms := "none"
		if len(cp.Synonyms) > 0 {
			synonyms = strings.Join(cp.Synonyms, ", ")
		}
		fmt.Fprintf(&b, "%d. %q (criticity: %s)\n", i+1, cp.Name, cp.Criticity)
		fmt.Fprintf(&b, "   - Description: %s\n", cp.Description)
		fmt.Fprintf(&b, "   - Synonyms to look for: %s\n", synonyms)
	}

	b.WriteString(`
## INSTRUCTIONS

For every control point above, report:
- "status": "found" if the information is present, "not_found" if absent,
  "ambiguous" if partial or unclear.
- "value": the exact text extracted from the document, or null.
- "comment": a short justification quoting the document, or null.

Rules:
- Check every control point; try each listed synonym before concluding "not_found".
- Base every answer strictly on the document text below. Never guess.
- Quote concrete evidence in "comment" for every "found" status.

## RESPONSE FORMAT

Respond with a single JSON object mapping each control point name, exactly
as written above, to an object:

{
  "<control point name>": {"status": "found|not_found|ambiguous", "value": "...", "comment": "..."}
}

Every control point name must appear exactly once.

## DOCUMENT TEXT

`)
	b.WriteString(text)

	return b.String()
}
