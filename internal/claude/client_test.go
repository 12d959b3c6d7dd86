package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/config"
)

func testClient(serverURL string) *Client {
	return NewClient(config.ClaudeConfig{
		APIKey:     "sk-ant-test",
		BaseURL:    serverURL,
		APIVersion: "2023-06-01",
		Model:      "claude-3-7-sonnet-20250219",
		Timeout:    5 * time.Second,
		MaxRetries: 2,
		MaxTokens:  4096,
	})
}

func TestGenerateChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "analyze this", req.System)

		_ = json.NewEncoder(w).Encode(ChatResponse{
			ID:   "msg_123",
			Role: "assistant",
			Content: []ContentBlock{
				{Type: "text", Text: "hello "},
				{Type: "text", Text: "world"},
			},
			Usage: UsageInfo{InputTokens: 12, OutputTokens: 2},
		})
	}))
	defer server.Close()

	resp, err := testClient(server.URL).GenerateChat(context.Background(), ChatRequest{
		System:   "analyze this",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", resp.Text())
	assert.Equal(t, 14, resp.Usage.InputTokens+resp.Usage.OutputTokens)
}

func TestChatResponseTextSkipsNonTextBlocks(t *testing.T) {
	resp := &ChatResponse{
		Content: []ContentBlock{
			{Type: "thinking", Text: "internal notes"},
			{Type: "text", Text: "the answer"},
		},
	}
	assert.Equal(t, "the answer", resp.Text())
}

func TestGenerateChatAPIError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid key"}}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GenerateChat(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "auth errors must not be retried")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "authentication_error", apiErr.Type)
}

func TestAPIErrorRetryable(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: 429}).Retryable())
	assert.True(t, (&APIError{StatusCode: 529}).Retryable())
	assert.True(t, (&APIError{StatusCode: 500}).Retryable())
	assert.False(t, (&APIError{StatusCode: 400}).Retryable())
	assert.False(t, (&APIError{StatusCode: 401}).Retryable())
}
