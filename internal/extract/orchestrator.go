package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ndelorme/conforma/internal/llm"
	"github.com/ndelorme/conforma/internal/model"
)

// sleepFunc is the sleep used between retries (injectable for tests).
var sleepFunc = sleepCtx

// Orchestrator drives the extraction of one document: prompt, completion
// call with bounded backoff, schema validation, reconciliation against
// the lexical hints, and the overall verdict.
type Orchestrator struct {
	provider llm.Provider
	retry    model.RetryConfig
}

// NewOrchestrator creates an orchestrator around a completion provider.
func NewOrchestrator(provider llm.Provider, retry model.RetryConfig) *Orchestrator {
	if retry.MaxAttempts <= 0 {
		retry.MaxAttempts = 1
	}
	if retry.InitialDelay <= 0 {
		retry.InitialDelay = time.Second
	}
	if retry.MaxDelay <= 0 {
		retry.MaxDelay = 30 * time.Second
	}
	return &Orchestrator{provider: provider, retry: retry}
}

// Extract runs the full extraction for one document. All-or-nothing: on
// any error no partial ExtractionResult is returned.
func (o *Orchestrator) Extract(ctx context.Context, docID string, t *model.DocumentTemplate, text string, hints []model.MatchHint) (*model.ExtractionResult, error) {
	if len(hints) != len(t.ControlPoints) {
		return nil, fmt.Errorf("got %d hints for %d control points", len(hints), len(t.ControlPoints))
	}

	req := llm.CompletionRequest{
		System:      systemMessage,
		Prompt:      BuildPrompt(t, text),
		Temperature: 0.1,
	}

	resp, err := o.completeWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}

	points, err := parseResponse(t, resp.Text)
	if err != nil {
		return nil, err
	}

	hintByName := make(map[string]model.MatchHint, len(hints))
	for _, h := range hints {
		hintByName[h.ControlPointName] = h
	}

	verdicts := make([]model.ExtractionVerdict, 0, len(t.ControlPoints))
	for _, cp := range t.ControlPoints {
		point := points[cp.Name]
		aiStatus, _ := parseAIStatus(point.Status) // Validated in parseResponse

		status, confidence := reconcile(aiStatus, hintByName[cp.Name])

		verdicts = append(verdicts, model.ExtractionVerdict{
			ControlPointName: cp.Name,
			Status:           status,
			Value:            point.Value,
			Confidence:       confidence,
			Criticity:        cp.Criticity,
			Comment:          point.Comment,
		})
	}

	return &model.ExtractionResult{
		TemplateCategory:   t.Category,
		DocumentIdentifier: docID,
		AnalyzedAt:         time.Now().UTC(),
		Model:              resp.Model,
		Verdicts:           verdicts,
		OverallStatus:      AggregateOverall(verdicts),
	}, nil
}

// completeWithRetry retries transient completion failures with bounded
// exponential backoff. Non-transient failures (bad credentials) and
// context cancellation surface immediately.
func (o *Orchestrator) completeWithRetry(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	delay := o.retry.InitialDelay

	var lastErr error
	for attempt := 1; attempt <= o.retry.MaxAttempts; attempt++ {
		resp, err := o.provider.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var svcErr *llm.ServiceError
		if !errors.As(err, &svcErr) || !svcErr.Retryable() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == o.retry.MaxAttempts {
			break
		}

		if err := sleepFunc(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
		if delay > o.retry.MaxDelay {
			delay = o.retry.MaxDelay
		}
	}

	return nil, &model.ServiceUnavailableError{Attempts: o.retry.MaxAttempts, Cause: lastErr}
}

// sleepCtx sleeps unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
