// Package llm defines a provider-neutral chat client interface and a factory
// that selects between the configured providers.
package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/repolens/repolens/internal/claude"
	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/logging"
	"github.com/repolens/repolens/internal/ollama"
	"github.com/repolens/repolens/internal/openai"
)

// ChatRequest represents a generic chat request to any LLM
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Message represents a chat message with role and content
type Message struct {
	Role    string `json:"role"` // user, assistant, or system
	Content string `json:"content"`
}

// ChatResponse represents a response from a chat request
type ChatResponse struct {
	Content    string `json:"content"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used,omitempty"`
}

// Client defines the interface for LLM clients
type Client interface {
	// GenerateChat sends a non-streaming chat request
	GenerateChat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ClientType defines the type of LLM client
type ClientType string

const (
	// OpenAI client type
	OpenAI ClientType = "openai"

	// Claude client type
	Claude ClientType = "claude"

	// Ollama client type
	Ollama ClientType = "ollama"
)

// Factory creates and returns LLM clients
type Factory struct {
	config *config.Config
	openai *openai.Client
	claude *claude.Client
	ollama *ollama.Client
	logger *logging.Logger

	openaiLimiter *rate.Limiter
	claudeLimiter *rate.Limiter
	ollamaLimiter *rate.Limiter
}

// newLimiter creates a rate limiter from requests-per-minute and burst values
func newLimiter(rpm, burst int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	b := burst
	if b <= 0 {
		b = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), b)
}

// NewFactory creates a new LLM client factory
func NewFactory(cfg *config.Config, logger *logging.Logger) *Factory {
	f := &Factory{
		config: cfg,
		logger: logger,
	}

	if cfg.OpenAI.APIKey != "" {
		f.openai = openai.NewClient(cfg.OpenAI)
		f.openaiLimiter = newLimiter(cfg.OpenAI.RequestsPerMinute, cfg.OpenAI.BurstLimit)
		logger.Info("initialized OpenAI client", "base_url", cfg.OpenAI.BaseURL, "model", cfg.OpenAI.Model)
	}

	if cfg.Claude.APIKey != "" {
		f.claude = claude.NewClient(cfg.Claude)
		f.claudeLimiter = newLimiter(cfg.Claude.RequestsPerMinute, cfg.Claude.BurstLimit)
		logger.Info("initialized Claude client", "base_url", cfg.Claude.BaseURL, "model", cfg.Claude.Model)
	}

	if cfg.Ollama.Endpoint != "" {
		f.ollama = ollama.NewClient(cfg.Ollama)
		f.ollamaLimiter = newLimiter(cfg.Ollama.RequestsPerMinute, cfg.Ollama.BurstLimit)
		logger.Info("initialized Ollama client", "endpoint", cfg.Ollama.Endpoint, "model", cfg.Ollama.Model)
	}

	return f
}

// GetClient returns an LLM client of the specified type
func (f *Factory) GetClient(clientType ClientType) (Client, error) {
	switch clientType {
	case OpenAI:
		if f.openai == nil {
			return nil, fmt.Errorf("OpenAI client not initialized - check OPENAI_API_KEY")
		}
		return newOpenAIAdapter(f.openai, f.config, f.openaiLimiter), nil

	case Claude:
		if f.claude == nil {
			return nil, fmt.Errorf("Claude client not initialized - check configuration")
		}
		return newClaudeAdapter(f.claude, f.config, f.claudeLimiter), nil

	case Ollama:
		if f.ollama == nil {
			return nil, fmt.Errorf("Ollama client not initialized - check configuration")
		}
		return newOllamaAdapter(f.ollama, f.config, f.ollamaLimiter), nil

	default:
		return nil, fmt.Errorf("unknown client type: %s", clientType)
	}
}

// GetDefaultClient returns the default client based on configuration,
// falling back to the first available provider.
func (f *Factory) GetDefaultClient() (Client, ClientType, error) {
	defaultType := ClientType(f.config.DefaultLLMProvider)

	client, err := f.GetClient(defaultType)
	if err == nil {
		return client, defaultType, nil
	}

	f.logger.Warn("default LLM provider not available, falling back", "default", defaultType, "error", err)

	if f.openai != nil {
		return newOpenAIAdapter(f.openai, f.config, f.openaiLimiter), OpenAI, nil
	}
	if f.claude != nil {
		return newClaudeAdapter(f.claude, f.config, f.claudeLimiter), Claude, nil
	}
	if f.ollama != nil {
		return newOllamaAdapter(f.ollama, f.config, f.ollamaLimiter), Ollama, nil
	}

	return nil, "", fmt.Errorf("no LLM clients initialized - check configuration")
}

// PingOllama verifies the configured Ollama endpoint is reachable. Unlike
// the hosted providers, a local Ollama daemon is often simply not running,
// so selecting it checks the endpoint up front instead of failing mid-run.
func (f *Factory) PingOllama(ctx context.Context) error {
	if f.ollama == nil {
		return fmt.Errorf("Ollama client not initialized - check configuration")
	}

	version, err := f.ollama.Version(ctx)
	if err != nil {
		return fmt.Errorf("ollama endpoint not reachable: %w", err)
	}

	f.logger.Debug("ollama endpoint reachable", "version", version)
	return nil
}

// DefaultModelParams returns the model name, temperature and max tokens for
// the given client type.
func (f *Factory) DefaultModelParams(clientType ClientType) (model string, temperature float64, maxTokens int) {
	switch clientType {
	case Claude:
		return f.config.Claude.Model, f.config.Claude.Temperature, f.config.Claude.MaxTokens
	case Ollama:
		return f.config.Ollama.Model, f.config.Ollama.Temperature, f.config.Ollama.MaxTokens
	default:
		return f.config.OpenAI.Model, f.config.OpenAI.Temperature, f.config.OpenAI.MaxTokens
	}
}
