package model

import "time"

// Config is the full application configuration. Populated from defaults,
// then the config file, environment and flags (in increasing priority).
type Config struct {
	OCR         OCRConfig         `yaml:"ocr" mapstructure:"ocr"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Retry       RetryConfig       `yaml:"retry" mapstructure:"retry"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// OCRConfig carries the preprocessing parameters forwarded to the OCR
// engine. Ranges are validated before any engine call.
type OCRConfig struct {
	DPI        int     `yaml:"dpi" mapstructure:"dpi"`               // 150..600
	Contrast   float64 `yaml:"contrast" mapstructure:"contrast"`     // 1.0..3.0
	Sharpness  float64 `yaml:"sharpness" mapstructure:"sharpness"`   // > 0
	Brightness float64 `yaml:"brightness" mapstructure:"brightness"` // > 0
	Threshold  int     `yaml:"threshold" mapstructure:"threshold"`   // 0..255
	Lang       string  `yaml:"lang" mapstructure:"lang"`
	Preprocess bool    `yaml:"preprocess" mapstructure:"preprocess"`
}

// LLMConfig selects and configures the completion provider.
type LLMConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model     string        `yaml:"model" mapstructure:"model"`
	APIKey    string        `yaml:"-" mapstructure:"-"` // From environment only, never persisted
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// CacheConfig controls the OCR text cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig bounds batch fan-out. The default stays small since
// completion services enforce external rate limits anyway.
type ConcurrencyConfig struct {
	Workers         int           `yaml:"workers" mapstructure:"workers"`
	DocumentTimeout time.Duration `yaml:"document_timeout" mapstructure:"document_timeout"`
}

// RetryConfig bounds the exponential backoff around completion calls.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay" mapstructure:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay" mapstructure:"max_delay"`
}

// RateLimitConfig throttles completion calls across batch workers.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults for every setting.
func DefaultConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			DPI:        300,
			Contrast:   2.0,
			Sharpness:  1.0,
			Brightness: 1.0,
			Threshold:  160,
			Lang:       "fra",
			Preprocess: true,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Timeout:   60 * time.Second,
			MaxTokens: 4000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".conforma-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:         4,
			DocumentTimeout: 2 * time.Minute,
		},
		Retry: RetryConfig{
			MaxAttempts:  3,
			InitialDelay: time.Second,
			MaxDelay:     30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
