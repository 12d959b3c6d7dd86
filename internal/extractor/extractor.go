// Package extractor pulls structured JSON out of noisy LLM responses.
// Models frequently wrap JSON in markdown fences or prepend prose; the
// extractor locates the last balanced JSON object in the text and decodes it.
package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/repolens/repolens/internal/logging"
)

// JSONExtractor extracts structured data from LLM responses
type JSONExtractor struct {
	logger *logging.Logger
}

// NewJSONExtractor creates a new JSONExtractor
func NewJSONExtractor(logger *logging.Logger) *JSONExtractor {
	return &JSONExtractor{logger: logger}
}

// Extract decodes the JSON object embedded in content into v.
func (e *JSONExtractor) Extract(content string, v interface{}) error {
	jsonContent, err := extractJSON(content)
	if err != nil {
		e.logger.Debug("failed to locate JSON in response", "error", err, "length", len(content))
		return err
	}

	if err := json.Unmarshal([]byte(jsonContent), v); err != nil {
		return fmt.Errorf("parsing extracted JSON: %w", err)
	}

	return nil
}

// extractJSON returns the last balanced top-level JSON object in content.
// Markdown code fences are stripped first.
func extractJSON(content string) (string, error) {
	content = stripFences(strings.TrimSpace(content))

	// Scan for balanced braces, respecting strings and escapes. The last
	// complete object wins: models are instructed to finish with the JSON.
	var (
		depth    int
		start    = -1
		inString bool
		escaped  bool
		lastObj  string
	)

	for i, r := range content {
		if escaped {
			escaped = false
			continue
		}

		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				if depth == 0 {
					start = i
				}
				depth++
			}
		case '}':
			if !inString && depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					candidate := content[start : i+1]
					if json.Valid([]byte(candidate)) {
						lastObj = candidate
					}
					start = -1
				}
			}
		}
	}

	if lastObj == "" {
		return "", fmt.Errorf("no valid JSON object found in response")
	}

	return lastObj, nil
}

// stripFences removes a wrapping markdown code fence, if present
func stripFences(content string) string {
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
