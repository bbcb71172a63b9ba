package model

import "time"

// Config holds the complete runtime configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Scrape      ScrapeConfig      `yaml:"scrape" mapstructure:"scrape"`
	Gates       GatesConfig       `yaml:"gates" mapstructure:"gates"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// ScrapeConfig controls company-website scraping
type ScrapeConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	PagesPerCategory  int     `yaml:"pages_per_category" mapstructure:"pages_per_category"`
	RespectRobots     bool    `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// GatesConfig holds the pipeline gate thresholds
type GatesConfig struct {
	// ClassificationConfidence below this produces a warn, never a halt.
	ClassificationConfidence float64 `yaml:"classification_confidence" mapstructure:"classification_confidence"`
	// VerificationRate below this marks the run "needs manual review".
	VerificationRate float64 `yaml:"verification_rate" mapstructure:"verification_rate"`
	// RequiredYears is the minimum year-entries per required financial metric.
	RequiredYears int `yaml:"required_years" mapstructure:"required_years"`
}

// LLMConfig configures the optional LLM backend for classification and
// content polish. Empty provider disables it.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, ollama, ""
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// CacheConfig controls the scraped-page cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls where artifacts land
type OutputConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool   `yaml:"include_footer" mapstructure:"include_footer"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
}

// DefaultConfig returns the built-in defaults, the lowest layer of the
// flags > env > file > defaults hierarchy.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Deckforge/0.1 (+https://github.com/nmishin/deckforge)",
			MaxBodyBytes: 2_000_000,
		},
		Scrape: ScrapeConfig{
			Enabled:           true,
			RequestsPerSecond: 1, // one outbound request per second
			PagesPerCategory:  2,
			RespectRobots:     true,
		},
		Gates: GatesConfig{
			ClassificationConfidence: 0.8,
			VerificationRate:         0.95,
			RequiredYears:            3,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Dir:           "./deckforge-output",
			IncludeFooter: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
