package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ndelorme/conforma/internal/cache"
	"github.com/ndelorme/conforma/internal/extract"
	"github.com/ndelorme/conforma/internal/llm"
	"github.com/ndelorme/conforma/internal/match"
	"github.com/ndelorme/conforma/internal/model"
	"github.com/ndelorme/conforma/internal/ocr"
	"github.com/ndelorme/conforma/internal/template"
	"github.com/ndelorme/conforma/internal/worker"
)

// Pipeline runs the full analysis of one document: OCR (cache-aware),
// lexical matching, AI extraction, reconciliation. Strictly sequential
// per document; batch parallelism lives in the worker package.
type Pipeline struct {
	registry     *template.Registry
	engine       ocr.Engine
	matcher      *match.Matcher
	orchestrator *extract.Orchestrator
	ocrCache     cache.Cache // nil when disabled
	limiter      *worker.Limiter
	config       *model.Config
}

// New assembles a pipeline. The registry is shared read-only state: it
// must be fully populated before the first Analyze call.
func New(registry *template.Registry, engine ocr.Engine, provider llm.Provider, cfg *model.Config) *Pipeline {
	var ocrCache cache.Cache
	if cfg.Cache.Enabled {
		ocrCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		registry:     registry,
		engine:       engine,
		matcher:      match.NewMatcher(),
		orchestrator: extract.NewOrchestrator(provider, cfg.Retry),
		ocrCache:     ocrCache,
		limiter:      worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		config:       cfg,
	}
}

// AnalyzeFile reads a document from disk and analyzes it against the
// template category.
func (p *Pipeline) AnalyzeFile(ctx context.Context, category, path string) (*model.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return p.Analyze(ctx, category, filepath.Base(path), data)
}

// Analyze runs the sequential per-document pipeline. The configured
// document timeout bounds the whole run; exceeding it fails only this
// document, never siblings in a batch.
func (p *Pipeline) Analyze(ctx context.Context, category, docID string, data []byte) (*model.ExtractionResult, error) {
	if timeout := p.config.Concurrency.DocumentTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tmpl, err := p.registry.Get(category)
	if err != nil {
		return nil, err
	}

	text, err := p.extractText(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: ocr: %w", docID, err)
	}

	hints := p.matcher.Match(tmpl, text)

	// The completion service enforces external rate limits; wait for a
	// slot before spending the call.
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := p.orchestrator.Extract(ctx, docID, tmpl, text, hints)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", docID, err)
	}
	return result, nil
}

// extractText runs OCR through the cache.
func (p *Pipeline) extractText(ctx context.Context, data []byte) (string, error) {
	if err := ocr.ValidateConfig(p.config.OCR); err != nil {
		return "", err
	}

	var key string
	if p.ocrCache != nil {
		key = cache.Key(data, p.config.OCR)
		if cached, found := p.ocrCache.Get(key); found {
			return string(cached), nil
		}
	}

	text, err := p.engine.ExtractText(ctx, data, p.config.OCR)
	if err != nil {
		return "", err
	}

	if p.ocrCache != nil {
		_ = p.ocrCache.Set(key, []byte(text), 0)
	}
	return text, nil
}
