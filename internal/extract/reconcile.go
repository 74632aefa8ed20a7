package extract

import "github.com/ndelorme/conforma/internal/model"

// reconcile cross-checks the AI-reported status against the independent
// lexical hint. The completion service offers no grounding guarantee,
// so neither signal is trusted alone:
//
//	AI found,     hint found     -> FOUND, high
//	AI found,     hint not found -> AMBIGUOUS, low (possible hallucination)
//	AI not found, hint found     -> AMBIGUOUS, low (possible AI miss)
//	AI not found, hint not found -> NOT_FOUND, high
//
// An AI "ambiguous" passes through as AMBIGUOUS; the hint only decides
// between medium and low confidence.
func reconcile(aiStatus model.VerdictStatus, hint model.MatchHint) (model.VerdictStatus, model.Confidence) {
	switch aiStatus {
	case model.StatusFound:
		if hint.Found {
			return model.StatusFound, model.ConfidenceHigh
		}
		return model.StatusAmbiguous, model.ConfidenceLow

	case model.StatusNotFound:
		if hint.Found {
			return model.StatusAmbiguous, model.ConfidenceLow
		}
		return model.StatusNotFound, model.ConfidenceHigh

	default: // StatusAmbiguous
		if hint.Found {
			return model.StatusAmbiguous, model.ConfidenceMedium
		}
		return model.StatusAmbiguous, model.ConfidenceLow
	}
}

// AggregateOverall derives the document verdict from the verdict set.
// Any CRITICAL point not cleanly found makes the document non-compliant;
// otherwise any MAJOR point missing makes it partial. Pure and
// order-independent.
func AggregateOverall(verdicts []model.ExtractionVerdict) model.OverallStatus {
	overall := model.OverallCompliant
	for _, v := range verdicts {
		if v.Criticity == model.CriticityCritical && v.Status != model.StatusFound {
			return model.OverallNonCompliant
		}
		if v.Criticity == model.CriticityMajor && v.Status == model.StatusNotFound {
			overall = model.OverallPartial
		}
	}
	return overall
}
