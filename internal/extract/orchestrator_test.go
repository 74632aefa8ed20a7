package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ndelorme/conforma/internal/llm"
	"github.com/ndelorme/conforma/internal/model"
)

// fakeProvider returns canned responses or failures, in order.
type fakeProvider struct {
	responses []string
	failures  []error
	calls     int
}

func (p *fakeProvider) Name() string                        { return "fake" }
func (p *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	i := p.calls
	p.calls++
	if i < len(p.failures) && p.failures[i] != nil {
		return nil, p.failures[i]
	}
	idx := i - len(p.failures)
	if idx >= len(p.responses) {
		idx = len(p.responses) - 1
	}
	return &llm.CompletionResponse{Text: p.responses[idx], Model: "fake-model"}, nil
}

func allergenTemplate() *model.DocumentTemplate {
	return &model.DocumentTemplate{
		Name:     "Fiche Test",
		Category: "agro",
		ControlPoints: []model.ControlPoint{
			{
				Name:        "Allergen Declaration",
				Description: "Allergen list",
				Criticity:   model.CriticityCritical,
				Synonyms:    []string{"allergènes", "allergenes"},
			},
		},
	}
}

func hintsFor(found bool) []model.MatchHint {
	h := model.MatchHint{ControlPointName: "Allergen Declaration", Found: found, MatchOffset: -1}
	if found {
		h.MatchedSnippet = "liste des allergenes: gluten"
		h.MatchOffset = 10
	}
	return []model.MatchHint{h}
}

func noRetry() model.RetryConfig {
	return model.RetryConfig{MaxAttempts: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func init() {
	// Tests never sleep for real.
	sleepFunc = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
}

func TestExtract_AgreementOnFound(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"Allergen Declaration": {"status": "found", "value": "gluten", "comment": "Liste des allergènes: gluten"}}`,
	}}
	o := NewOrchestrator(provider, noRetry())

	result, err := o.Extract(context.Background(), "fiche.png", allergenTemplate(), "Liste des allergènes: gluten", hintsFor(true))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	v := result.Verdicts[0]
	if v.Status != model.StatusFound {
		t.Errorf("Expected FOUND, got %s", v.Status)
	}
	if v.Confidence != model.ConfidenceHigh {
		t.Errorf("Expected HIGH confidence, got %s", v.Confidence)
	}
	if v.Value != "gluten" {
		t.Errorf("Expected value gluten, got %q", v.Value)
	}
	if v.Criticity != model.CriticityCritical {
		t.Errorf("Expected criticity copied from template, got %s", v.Criticity)
	}
	if result.OverallStatus != model.OverallCompliant {
		t.Errorf("Expected COMPLIANT, got %s", result.OverallStatus)
	}
}

func TestExtract_HallucinationDowngraded(t *testing.T) {
	// AI claims FOUND but the lexical scan saw nothing.
	provider := &fakeProvider{responses: []string{
		`{"Allergen Declaration": {"status": "found", "value": "gluten", "comment": "present"}}`,
	}}
	o := NewOrchestrator(provider, noRetry())

	result, err := o.Extract(context.Background(), "fiche.png", allergenTemplate(), "no allergen mention here", hintsFor(false))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	v := result.Verdicts[0]
	if v.Status != model.StatusAmbiguous {
		t.Errorf("Expected AMBIGUOUS, got %s", v.Status)
	}
	if v.Confidence != model.ConfidenceLow {
		t.Errorf("Expected LOW confidence, got %s", v.Confidence)
	}
	if result.OverallStatus != model.OverallNonCompliant {
		t.Errorf("Expected NON_COMPLIANT (critical point ambiguous), got %s", result.OverallStatus)
	}
}

func TestExtract_AIMissFlagged(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"Allergen Declaration": {"status": "not_found", "value": "", "comment": ""}}`,
	}}
	o := NewOrchestrator(provider, noRetry())

	result, err := o.Extract(context.Background(), "fiche.png", allergenTemplate(), "Liste des allergènes: gluten", hintsFor(true))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	v := result.Verdicts[0]
	if v.Status != model.StatusAmbiguous || v.Confidence != model.ConfidenceLow {
		t.Errorf("Expected AMBIGUOUS/LOW for AI miss, got %s/%s", v.Status, v.Confidence)
	}
}

func TestExtract_AgreementOnNotFound(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"Allergen Declaration": {"status": "not_found", "value": "", "comment": ""}}`,
	}}
	o := NewOrchestrator(provider, noRetry())

	result, err := o.Extract(context.Background(), "fiche.png", allergenTemplate(), "unrelated", hintsFor(false))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	v := result.Verdicts[0]
	if v.Status != model.StatusNotFound || v.Confidence != model.ConfidenceHigh {
		t.Errorf("Expected NOT_FOUND/HIGH, got %s/%s", v.Status, v.Confidence)
	}
}

func TestExtract_RetriesTransientThenSucceeds(t *testing.T) {
	transient := &llm.ServiceError{Kind: llm.FailureRateLimited, Provider: "fake", Cause: errors.New("429")}
	provider := &fakeProvider{
		failures: []error{transient, transient},
		responses: []string{
			`{"Allergen Declaration": {"status": "found", "value": "gluten", "comment": ""}}`,
		},
	}
	o := NewOrchestrator(provider, model.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond})

	_, err := o.Extract(context.Background(), "fiche.png", allergenTemplate(), "allergenes: gluten", hintsFor(true))
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if provider.calls != 3 {
		t.Errorf("Expected 3 calls, got %d", provider.calls)
	}
}

func TestExtract_ExhaustedRetriesSurfaceServiceUnavailable(t *testing.T) {
	transient := &llm.ServiceError{Kind: llm.FailureTimeout, Provider: "fake", Cause: errors.New("deadline")}
	provider := &fakeProvider{failures: []error{transient, transient, transient}}
	o := NewOrchestrator(provider, model.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond})

	result, err := o.Extract(context.Background(), "fiche.png", allergenTemplate(), "text", hintsFor(false))
	if result != nil {
		t.Error("Expected no partial result")
	}

	var unavailErr *model.ServiceUnavailableError
	if !errors.As(err, &unavailErr) {
		t.Fatalf("Expected ServiceUnavailableError, got %v", err)
	}
	if unavailErr.Attempts != 3 {
		t.Errorf("Expected 3 attempts recorded, got %d", unavailErr.Attempts)
	}
	if provider.calls != 3 {
		t.Errorf("Expected exactly 3 calls, got %d", provider.calls)
	}
}

func TestExtract_AuthFailureNotRetried(t *testing.T) {
	provider := &fakeProvider{failures: []error{
		&llm.ServiceError{Kind: llm.FailureAuthInvalid, Provider: "fake", Cause: errors.New("401")},
	}}
	o := NewOrchestrator(provider, model.RetryConfig{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond})

	_, err := o.Extract(context.Background(), "fiche.png", allergenTemplate(), "text", hintsFor(false))
	if err == nil {
		t.Fatal("Expected error")
	}
	if provider.calls != 1 {
		t.Errorf("Expected 1 call for auth failure, got %d", provider.calls)
	}
}

func TestExtract_MalformedResponseNotRetried(t *testing.T) {
	provider := &fakeProvider{responses: []string{"this is not json"}}
	o := NewOrchestrator(provider, model.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond})

	_, err := o.Extract(context.Background(), "fiche.png", allergenTemplate(), "text", hintsFor(false))

	var malformedErr *model.MalformedResponseError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("Expected MalformedResponseError, got %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("Expected 1 call (parse failures are not retried), got %d", provider.calls)
	}
}

func TestExtract_MissingControlPointIsMalformed(t *testing.T) {
	provider := &fakeProvider{responses: []string{`{"Wrong Name": {"status": "found"}}`}}
	o := NewOrchestrator(provider, noRetry())

	_, err := o.Extract(context.Background(), "fiche.png", allergenTemplate(), "text", hintsFor(false))

	var malformedErr *model.MalformedResponseError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("Expected MalformedResponseError for missing point, got %v", err)
	}
}

func TestExtract_HintCountMismatch(t *testing.T) {
	provider := &fakeProvider{responses: []string{`{}`}}
	o := NewOrchestrator(provider, noRetry())

	_, err := o.Extract(context.Background(), "fiche.png", allergenTemplate(), "text", nil)
	if err == nil {
		t.Fatal("Expected error for hint count mismatch")
	}
}

func TestBuildPrompt_EnumeratesAllControlPoints(t *testing.T) {
	tmpl := allergenTemplate()
	tmpl.ControlPoints = append(tmpl.ControlPoints, model.ControlPoint{
		Name:        "Origine",
		Description: "Country of origin",
		Criticity:   model.CriticityMajor,
		Synonyms:    []string{"Provenance"},
	})

	prompt := BuildPrompt(tmpl, "DOCUMENT BODY")

	for _, want := range []string{"Allergen Declaration", "Origine", "allergènes", "Provenance", "critical", "major", "DOCUMENT BODY"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}
