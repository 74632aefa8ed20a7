package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ndelorme/conforma/internal/model"
)

// aiPoint is the per-control-point answer the completion service must
// return.
type aiPoint struct {
	Status  string `json:"status"`
	Value   string `json:"value"`
	Comment string `json:"comment"`
}

// parseResponse validates the completion text against the template
// schema. A response that is not valid JSON, or that omits a control
// point the template defines, is a MalformedResponseError: for
// compliance use a silently dropped field is a correctness bug, so the
// mismatch is surfaced, never papered over.
func parseResponse(t *model.DocumentTemplate, raw string) (map[string]aiPoint, error) {
	cleaned := stripCodeFences(raw)

	var points map[string]aiPoint
	if err := json.Unmarshal([]byte(cleaned), &points); err != nil {
		return nil, &model.MalformedResponseError{
			Reason: fmt.Sprintf("invalid JSON: %v", err),
			Raw:    raw,
		}
	}

	for _, cp := range t.ControlPoints {
		point, ok := points[cp.Name]
		if !ok {
			return nil, &model.MalformedResponseError{
				Reason: fmt.Sprintf("control point %q missing from response", cp.Name),
				Raw:    raw,
			}
		}
		if _, err := parseAIStatus(point.Status); err != nil {
			return nil, &model.MalformedResponseError{
				Reason: fmt.Sprintf("control point %q: %v", cp.Name, err),
				Raw:    raw,
			}
		}
	}

	return points, nil
}

// parseAIStatus normalizes the status strings models actually emit.
func parseAIStatus(s string) (model.VerdictStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "found":
		return model.StatusFound, nil
	case "not_found", "not found":
		return model.StatusNotFound, nil
	case "ambiguous":
		return model.StatusAmbiguous, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// stripCodeFences removes a surrounding markdown code block, which some
// models add despite JSON-only instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
