package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/ndelorme/conforma/internal/llm"
	"github.com/ndelorme/conforma/internal/model"
	"github.com/ndelorme/conforma/internal/ocr"
	"github.com/ndelorme/conforma/internal/pipeline"
	"github.com/ndelorme/conforma/internal/template"
)

// Flags shared between analyze, compare and batch.
var (
	templateCategory string
	templatesDir     string
	llmProvider      string
	llmModel         string
	llmTimeout       time.Duration
	ocrLang          string
	ocrDPI           int
	noCache          bool
	noFooter         bool
	docTimeout       time.Duration
	maxAttempts      int
)

// buildConfig merges defaults, the viper-backed config file/env, and the
// command flags, in increasing priority.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	// Config file / environment overrides.
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring invalid config file values: %v\n", err)
		cfg = model.DefaultConfig()
	}

	// Flag overrides.
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if llmTimeout > 0 {
		cfg.LLM.Timeout = llmTimeout
	}
	if ocrLang != "" {
		cfg.OCR.Lang = ocrLang
	}
	if ocrDPI > 0 {
		cfg.OCR.DPI = ocrDPI
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if docTimeout > 0 {
		cfg.Concurrency.DocumentTimeout = docTimeout
	}
	if maxAttempts > 0 {
		cfg.Retry.MaxAttempts = maxAttempts
	}
	cfg.Output.Verbose = verbose

	return cfg
}

// resolveAPIKey pulls the provider credential from the environment; keys
// never live in config files.
func resolveAPIKey(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// buildRegistry loads the built-in templates plus any YAML templates
// from the configured directory.
func buildRegistry() (*template.Registry, error) {
	registry := template.NewBuiltinRegistry()
	if templatesDir != "" {
		if err := template.LoadDir(registry, templatesDir); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// buildPipeline wires registry, OCR engine and completion provider.
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, error) {
	if err := resolveAPIKey(cfg); err != nil {
		return nil, err
	}

	registry, err := buildRegistry()
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return nil, err
	}

	return pipeline.New(registry, ocr.NewTesseractEngine(), provider, cfg), nil
}
