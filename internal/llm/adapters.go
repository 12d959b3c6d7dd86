package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/repolens/repolens/internal/claude"
	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/ollama"
	"github.com/repolens/repolens/internal/openai"
)

// openaiAdapter adapts the OpenAI client to the llm.Client interface
type openaiAdapter struct {
	client  *openai.Client
	config  *config.Config
	limiter *rate.Limiter
}

func newOpenAIAdapter(client *openai.Client, cfg *config.Config, limiter *rate.Limiter) Client {
	return &openaiAdapter{client: client, config: cfg, limiter: limiter}
}

func (a *openaiAdapter) GenerateChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	messages := make([]openai.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.Message{Role: msg.Role, Content: msg.Content})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in OpenAI response")
	}

	return &ChatResponse{
		Content:    resp.Choices[0].Message.Content,
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

func (a *openaiAdapter) wait(ctx context.Context) error {
	if a.limiter == nil {
		return nil
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// claudeAdapter adapts the Claude client to the llm.Client interface
type claudeAdapter struct {
	client  *claude.Client
	config  *config.Config
	limiter *rate.Limiter
}

func newClaudeAdapter(client *claude.Client, cfg *config.Config, limiter *rate.Limiter) Client {
	return &claudeAdapter{client: client, config: cfg, limiter: limiter}
}

func (a *claudeAdapter) GenerateChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	// Claude carries the system prompt outside of the message list
	var system string
	messages := make([]claude.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		if msg.Role == "system" {
			system = msg.Content
			continue
		}
		messages = append(messages, claude.Message{Role: msg.Role, Content: msg.Content})
	}

	var temperature *float64
	if req.Temperature > 0 {
		temperature = &req.Temperature
	}

	resp, err := a.client.GenerateChat(ctx, claude.ChatRequest{
		Model:       req.Model,
		System:      system,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}

	return &ChatResponse{
		Content:    resp.Text(),
		Model:      resp.Model,
		TokensUsed: resp.Usage.InputTokens + resp.Usage.OutputTokens,
	}, nil
}

// ollamaAdapter adapts the Ollama client to the llm.Client interface
type ollamaAdapter struct {
	client  *ollama.Client
	config  *config.Config
	limiter *rate.Limiter
}

func newOllamaAdapter(client *ollama.Client, cfg *config.Config, limiter *rate.Limiter) Client {
	return &ollamaAdapter{client: client, config: cfg, limiter: limiter}
}

func (a *ollamaAdapter) GenerateChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	messages := make([]ollama.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, ollama.Message{Role: msg.Role, Content: msg.Content})
	}

	resp, err := a.client.GenerateChat(ctx, ollama.ChatRequest{
		Model:    req.Model,
		Messages: messages,
		Options: ollama.Options{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	})
	if err != nil {
		return nil, err
	}

	return &ChatResponse{
		Content: resp.Message.Content,
		Model:   resp.Model,
	}, nil
}
