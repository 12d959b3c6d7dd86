package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/logging"
)

type payload struct {
	Summary  string   `json:"summary"`
	Findings []string `json:"findings"`
}

func newTestExtractor() *JSONExtractor {
	return NewJSONExtractor(logging.NewNoopLogger())
}

func TestExtractPlainJSON(t *testing.T) {
	var p payload
	err := newTestExtractor().Extract(`{"summary": "ok", "findings": ["a"]}`, &p)
	require.NoError(t, err)
	assert.Equal(t, "ok", p.Summary)
	assert.Equal(t, []string{"a"}, p.Findings)
}

func TestExtractFencedJSON(t *testing.T) {
	content := "```json\n{\"summary\": \"fenced\", \"findings\": []}\n```"

	var p payload
	err := newTestExtractor().Extract(content, &p)
	require.NoError(t, err)
	assert.Equal(t, "fenced", p.Summary)
}

func TestExtractJSONWithLeadingProse(t *testing.T) {
	content := "Here is my analysis of the repository.\n\n" +
		`{"summary": "after prose", "findings": []}`

	var p payload
	err := newTestExtractor().Extract(content, &p)
	require.NoError(t, err)
	assert.Equal(t, "after prose", p.Summary)
}

func TestExtractLastObjectWins(t *testing.T) {
	content := `{"summary": "first", "findings": []}` + "\nRevised answer:\n" +
		`{"summary": "second", "findings": []}`

	var p payload
	err := newTestExtractor().Extract(content, &p)
	require.NoError(t, err)
	assert.Equal(t, "second", p.Summary)
}

func TestExtractBracesInsideStrings(t *testing.T) {
	content := `{"summary": "uses {braces} and \"quotes\"", "findings": []}`

	var p payload
	err := newTestExtractor().Extract(content, &p)
	require.NoError(t, err)
	assert.Equal(t, `uses {braces} and "quotes"`, p.Summary)
}

func TestExtractNoJSON(t *testing.T) {
	var p payload
	err := newTestExtractor().Extract("I'm sorry, I cannot review this code.", &p)
	assert.Error(t, err)
}

func TestExtractMalformedJSON(t *testing.T) {
	var p payload
	err := newTestExtractor().Extract(`{"summary": "unclosed`, &p)
	assert.Error(t, err)
}

func TestExtractTypeMismatch(t *testing.T) {
	var p payload
	err := newTestExtractor().Extract(`{"summary": 42, "findings": []}`, &p)
	assert.Error(t, err)
}
