package model

// Config is the full soilgrade configuration. The engine itself only
// consumes Engine; the rest configures the CLI shell around it.
type Config struct {
	Engine       EngineConfig       `json:"engine" yaml:"engine"`
	Cache        CacheConfig        `json:"cache" yaml:"cache"`
	Concurrency  ConcurrencyConfig  `json:"concurrency" yaml:"concurrency"`
	RateLimiting RateLimitingConfig `json:"rate_limiting" yaml:"rate_limiting"`
	Output       OutputConfig       `json:"output" yaml:"output"`
	LLM          LLMConfig          `json:"llm" yaml:"llm"`
}

// EngineConfig holds the classification thresholds the standard's text
// leaves open. The defaults follow IS 1498 convention; they are
// configurable because the edge-case text could not be verified.
type EngineConfig struct {
	// FinesDominancePct is the fines percentage at which a sample is
	// fine-grained (default 50).
	FinesDominancePct float64 `json:"fines_dominance_pct" yaml:"fines_dominance_pct"`

	// FinesTieBreak decides a sample sitting exactly on the dominance
	// threshold: "fine" (default, per convention) or "coarse".
	FinesTieBreak string `json:"fines_tie_break" yaml:"fines_tie_break"`

	// OnLineEpsilonPI is the tolerance band (in PI points) within which
	// a chart point counts as on a line.
	OnLineEpsilonPI float64 `json:"on_line_epsilon_pi" yaml:"on_line_epsilon_pi"`
}

// CacheConfig controls report memoization.
type CacheConfig struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	TTLMinutes int  `json:"ttl_minutes" yaml:"ttl_minutes"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

// RateLimitingConfig throttles outbound LLM summary calls in batch runs.
type RateLimitingConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	BurstSize         int     `json:"burst_size" yaml:"burst_size"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	Verbose       bool `json:"verbose" yaml:"verbose"`
	IncludeFooter bool `json:"include_footer" yaml:"include_footer"`
}

// LLMConfig configures the optional narrative summarizer.
type LLMConfig struct {
	Provider       string `json:"provider,omitempty" yaml:"provider,omitempty"` // "openai", "ollama", "" (disabled)
	Model          string `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey         string `json:"-" yaml:"-"` // from environment, never serialized
	BaseURL        string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxTokens      int    `json:"max_tokens" yaml:"max_tokens"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			FinesDominancePct: 50,
			FinesTieBreak:     "fine",
			OnLineEpsilonPI:   0.1,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLMinutes: 60,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			TimeoutSeconds: 30,
			MaxTokens:      800,
		},
	}
}
