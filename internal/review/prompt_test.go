package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/scanner"
)

func testFiles() []scanner.SelectedFile {
	return []scanner.SelectedFile{
		{Path: "main.go", Language: "Go", Content: "package main\n"},
		{Path: "internal/server.go", Language: "Go", Content: "package internal\n"},
	}
}

func TestBuildCorpusPrompt(t *testing.T) {
	prompt, err := BuildCorpusPrompt("acme/widget", testFiles(), map[string]int{".go": 2})
	require.NoError(t, err)

	assert.Contains(t, prompt, "acme/widget")
	assert.Contains(t, prompt, "File: main.go (Go)")
	assert.Contains(t, prompt, "File: internal/server.go (Go)")
	assert.Contains(t, prompt, "package main")
	assert.Contains(t, prompt, ".go: 2")
	assert.Contains(t, prompt, "internal/\n  server.go\nmain.go")
}

func TestBuildCategoryPrompt(t *testing.T) {
	corpus := "CORPUS"

	for _, category := range Categories() {
		prompt := BuildCategoryPrompt(corpus, category, nil)
		assert.True(t, strings.HasPrefix(prompt, corpus), "prompt must start with the repository context")
		assert.Contains(t, prompt, categoryGuidance[category])
	}
}

func TestBuildCategoryPromptDiffersPerCategory(t *testing.T) {
	seen := make(map[string]bool)
	for _, category := range Categories() {
		prompt := BuildCategoryPrompt("CORPUS", category, nil)
		assert.False(t, seen[prompt], "each category must get a distinct prompt")
		seen[prompt] = true
	}
}

func TestBuildSuggestionPromptIncludesPriorFindings(t *testing.T) {
	prior := []Finding{
		{Category: CategorySecurity, Severity: SeverityHigh, Title: "SQL injection in login", File: "auth.go"},
		{Category: CategoryBug, Severity: SeverityMedium, Title: "Nil map write"},
	}

	prompt := BuildCategoryPrompt("CORPUS", CategorySuggestion, prior)

	assert.Contains(t, prompt, "SQL injection in login")
	assert.Contains(t, prompt, "(auth.go)")
	assert.Contains(t, prompt, "Nil map write")

	// Other categories never see the accumulated findings
	securityPrompt := BuildCategoryPrompt("CORPUS", CategorySecurity, prior)
	assert.NotContains(t, securityPrompt, "SQL injection in login")
}

func TestSystemInstructionDemandsJSON(t *testing.T) {
	assert.Contains(t, SystemInstruction(), `"findings"`)
	assert.Contains(t, SystemInstruction(), `"severity"`)
	assert.Contains(t, UnderstandingInstruction(), `"tech_stack"`)
}

func TestBuildUnderstandingPrompt(t *testing.T) {
	prompt := BuildUnderstandingPrompt("CORPUS")
	assert.True(t, strings.HasPrefix(prompt, "CORPUS"))
	assert.Contains(t, prompt, "tech stack")
}
