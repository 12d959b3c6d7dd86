// Package config holds the process-wide configuration, loaded once at startup
// and passed explicitly into every service.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	DefaultLLMProvider string // Which provider to use by default (openai, claude, or ollama)
	OpenAI             OpenAIConfig
	Claude             ClaudeConfig
	Ollama             OllamaConfig
	Review             ReviewConfig
	Pricing            PricingConfig
	GitHub             GitHubConfig
	Logging            LoggingConfig
}

// ReviewConfig controls file selection and prompt sizing
type ReviewConfig struct {
	SupportedExtensions []string // File extensions eligible for review (".go", ".py", ...)
	IgnorePatterns      []string // Path patterns excluded from the walk
	MaxFiles            int      // Hard cap on selected files
	MaxFileBytes        int64    // Per-file size cap; larger files are skipped
	MaxContextTokens    int      // Combined prompt budget per category call
}

// PricingConfig holds the per-token prices used by the cost estimator
type PricingConfig struct {
	InputPerMillion  float64 // USD per 1M input tokens
	OutputPerMillion float64 // USD per 1M output tokens
}

// GitHubConfig represents GitHub API configuration for the pre-clone check
type GitHubConfig struct {
	Token          string        // GitHub Personal Access Token (optional)
	RequestTimeout time.Duration // Request timeout for GitHub API
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // text or json
	Output     string // stdout, stderr, or file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	MaxTokens   int
	Temperature float64

	// Rate limiting
	RequestsPerMinute int
	BurstLimit        int
}

// ClaudeConfig holds Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string
	BaseURL     string
	APIVersion  string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	MaxTokens   int
	Temperature float64

	// Rate limiting
	RequestsPerMinute int
	BurstLimit        int
}

// OllamaConfig holds configuration for a local Ollama endpoint
type OllamaConfig struct {
	Endpoint    string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	MaxTokens   int
	Temperature float64

	// Rate limiting
	RequestsPerMinute int
	BurstLimit        int
}

// New returns a new empty Config
func New() *Config {
	return &Config{}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateProvider(); err != nil {
		return fmt.Errorf("LLM config: %w", err)
	}

	if err := c.validateReview(); err != nil {
		return fmt.Errorf("review config: %w", err)
	}

	if err := c.validatePricing(); err != nil {
		return fmt.Errorf("pricing config: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ParseLogLevel parses a log level string to a slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		return slog.Level(9999)
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validateProvider() error {
	switch c.DefaultLLMProvider {
	case "openai", "claude", "ollama":
	case "":
		return fmt.Errorf("default provider cannot be empty")
	default:
		return fmt.Errorf("unknown provider %q", c.DefaultLLMProvider)
	}
	return nil
}

func (c *Config) validateReview() error {
	if len(c.Review.SupportedExtensions) == 0 {
		return fmt.Errorf("supported_extensions cannot be empty")
	}

	for _, ext := range c.Review.SupportedExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	if c.Review.MaxFiles <= 0 {
		return fmt.Errorf("max_files must be positive")
	}

	if c.Review.MaxFileBytes <= 0 {
		return fmt.Errorf("max_file_bytes must be positive")
	}

	if c.Review.MaxContextTokens <= 0 {
		return fmt.Errorf("max_context_tokens must be positive")
	}

	return nil
}

func (c *Config) validatePricing() error {
	if c.Pricing.InputPerMillion < 0 {
		return fmt.Errorf("input price cannot be negative")
	}
	if c.Pricing.OutputPerMillion < 0 {
		return fmt.Errorf("output price cannot be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error", "none", "":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json", "":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}
