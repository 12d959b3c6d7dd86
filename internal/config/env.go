package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default file selection values, matching the common code-review surface.
var (
	defaultExtensions = []string{
		".go", ".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".rb", ".rs",
		".c", ".h", ".cpp", ".hpp", ".cs", ".php", ".swift", ".kt", ".sh", ".sql",
	}
	defaultIgnorePatterns = []string{
		"node_modules/", "vendor/", "dist/", "build/", "target/", ".git/",
		"__pycache__/", ".venv/", "venv/", "testdata/", "*.min.js",
	}
)

// LoadFromEnv loads configuration from environment variables.
// An optional .env file is read first: ENV_FILE_PATH if set, otherwise
// ~/.repolens/.env, otherwise .env in the current directory.
func LoadFromEnv() (*Config, error) {
	cfg := New()

	if envFilePath := getEnvString("ENV_FILE_PATH", ""); envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else {
		if homeDir, err := os.UserHomeDir(); err == nil {
			_ = godotenv.Load(filepath.Join(homeDir, ".repolens", ".env"))
		}
		_ = godotenv.Load() // fall back to ./.env, ignore if absent
	}

	cfg.DefaultLLMProvider = getEnvString("REPOLENS_LLM_DEFAULT_PROVIDER", "openai")

	cfg.OpenAI = OpenAIConfig{
		APIKey:            getEnvString("OPENAI_API_KEY", ""),
		BaseURL:           getEnvString("REPOLENS_OPENAI_BASE_URL", "https://api.openai.com"),
		Model:             getEnvString("REPOLENS_OPENAI_MODEL", "gpt-4o"),
		Timeout:           getEnvDuration("REPOLENS_OPENAI_TIMEOUT", 120*time.Second),
		MaxRetries:        getEnvInt("REPOLENS_OPENAI_MAX_RETRIES", 3),
		MaxTokens:         getEnvInt("REPOLENS_OPENAI_MAX_TOKENS", 4096),
		Temperature:       getEnvFloat("REPOLENS_OPENAI_TEMPERATURE", 0.2),
		RequestsPerMinute: getEnvInt("REPOLENS_OPENAI_RPM", 60),
		BurstLimit:        getEnvInt("REPOLENS_OPENAI_BURST", 5),
	}

	cfg.Claude = ClaudeConfig{
		APIKey:            getEnvString("REPOLENS_CLAUDE_API_KEY", ""),
		BaseURL:           getEnvString("REPOLENS_CLAUDE_BASE_URL", "https://api.anthropic.com"),
		APIVersion:        getEnvString("REPOLENS_CLAUDE_API_VERSION", "2023-06-01"),
		Model:             getEnvString("REPOLENS_CLAUDE_MODEL", "claude-3-7-sonnet-20250219"),
		Timeout:           getEnvDuration("REPOLENS_CLAUDE_TIMEOUT", 120*time.Second),
		MaxRetries:        getEnvInt("REPOLENS_CLAUDE_MAX_RETRIES", 3),
		MaxTokens:         getEnvInt("REPOLENS_CLAUDE_MAX_TOKENS", 4096),
		Temperature:       getEnvFloat("REPOLENS_CLAUDE_TEMPERATURE", 0.1),
		RequestsPerMinute: getEnvInt("REPOLENS_CLAUDE_RPM", 50),
		BurstLimit:        getEnvInt("REPOLENS_CLAUDE_BURST", 5),
	}

	cfg.Ollama = OllamaConfig{
		Endpoint:          getEnvString("REPOLENS_OLLAMA_ENDPOINT", ""),
		Model:             getEnvString("REPOLENS_OLLAMA_MODEL", "gemma3"),
		Timeout:           getEnvDuration("REPOLENS_OLLAMA_TIMEOUT", 600*time.Second),
		MaxRetries:        getEnvInt("REPOLENS_OLLAMA_MAX_RETRIES", 3),
		MaxTokens:         getEnvInt("REPOLENS_OLLAMA_MAX_TOKENS", 2048),
		Temperature:       getEnvFloat("REPOLENS_OLLAMA_TEMPERATURE", 0.7),
		RequestsPerMinute: getEnvInt("REPOLENS_OLLAMA_RPM", 0),
		BurstLimit:        getEnvInt("REPOLENS_OLLAMA_BURST", 1),
	}

	cfg.Review = ReviewConfig{
		SupportedExtensions: getEnvList("REPOLENS_REVIEW_EXTENSIONS", defaultExtensions),
		IgnorePatterns:      getEnvList("REPOLENS_REVIEW_IGNORE_PATTERNS", defaultIgnorePatterns),
		MaxFiles:            getEnvInt("REPOLENS_REVIEW_MAX_FILES", 100),
		MaxFileBytes:        getEnvInt64("REPOLENS_REVIEW_MAX_FILE_BYTES", 512*1024),
		MaxContextTokens:    getEnvInt("REPOLENS_REVIEW_MAX_CONTEXT_TOKENS", 100_000),
	}

	cfg.Pricing = PricingConfig{
		InputPerMillion:  getEnvFloat("REPOLENS_PRICE_INPUT_PER_MILLION", 2.50),
		OutputPerMillion: getEnvFloat("REPOLENS_PRICE_OUTPUT_PER_MILLION", 10.00),
	}

	cfg.GitHub = GitHubConfig{
		Token:          getEnvString("GITHUB_TOKEN", ""),
		RequestTimeout: getEnvDuration("REPOLENS_GITHUB_REQUEST_TIMEOUT", 30*time.Second),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString("REPOLENS_LOG_LEVEL", "info"),
		Format:     getEnvString("REPOLENS_LOG_FORMAT", "text"),
		Output:     getEnvString("REPOLENS_LOG_OUTPUT", "stderr"),
		AddSource:  getEnvBool("REPOLENS_LOG_ADD_SOURCE", false),
		TimeFormat: getEnvString("REPOLENS_LOG_TIME_FORMAT", time.RFC3339),
	}

	return cfg, cfg.Validate()
}

// getEnvString returns a string from the environment variable
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an int from the environment variable
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 from the environment variable
func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool returns a bool from the environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration returns a time.Duration from the environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvFloat returns a float64 from the environment variable
func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvList returns a comma-separated list from the environment variable
func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
