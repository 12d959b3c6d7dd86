package review

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/repolens/repolens/internal/scanner"
)

const systemInstruction = `You are a senior software engineer performing a code review of an entire repository. Your PRIMARY GOAL is to provide a VALID JSON response. The JSON response MUST be a complete, parseable JSON object as your final statement, even if other text precedes it.

Follow this schema EXACTLY without adding any additional fields:

{
  "summary": "Brief overview of what you found in this review dimension",
  "findings": [
    {
      "severity": "critical|high|medium|low|info",
      "title": "Finding title",
      "description": "Explanation of the problem and its impact",
      "file": "relative/path/to/file",
      "line_start": 10,
      "line_end": 15,
      "suggestion": "How to fix or improve it"
    }
  ]
}

IMPORTANT:
- ONLY include the fields specified above.
- INCLUDE both required fields even when there is nothing to report: {"summary": "No findings", "findings": []}
- Reference exact file paths from the repository content you were given.
- Choose severity by real impact, not by style preference.
- Be specific and actionable. Skip nitpicks.

Provide the JSON response as your LAST statement.`

const understandingInstruction = `You are a senior software engineer analyzing a repository to understand what it does. Your PRIMARY GOAL is to provide a VALID JSON response as your final statement.

Follow this schema EXACTLY:

{
  "description": "Clear 2-3 sentence description of what this project does",
  "project_type": "e.g. Web Application, CLI Tool, Library, API",
  "tech_stack": ["Primary language/framework", "Other key technologies"],
  "key_features": ["Feature 1", "Feature 2"],
  "complexity": "simple|moderate|complex"
}

Provide the JSON response as your LAST statement.`

// categoryGuidance is the per-category focus appended to the review prompt
var categoryGuidance = map[Category]string{
	CategorySecurity:      `Focus exclusively on SECURITY: injection (SQL, command, template), path traversal, hardcoded credentials or secrets, missing authentication or authorization checks, unsafe deserialization, weak cryptography, and unvalidated input reaching sensitive operations.`,
	CategoryBug:           `Focus exclusively on BUGS: logic errors, off-by-one mistakes, nil/null dereferences, unhandled error paths, race conditions, resource leaks, and incorrect edge-case handling that would cause wrong behavior or crashes.`,
	CategoryPerformance:   `Focus exclusively on PERFORMANCE: unnecessary allocations in hot paths, quadratic algorithms where linear ones exist, repeated I/O that could be batched or cached, unbounded growth of collections, and blocking calls that serialize work needlessly.`,
	CategoryQuality:       `Focus exclusively on CODE QUALITY: duplicated logic, overly complex functions, confusing naming, dead code, inconsistent error handling, and violations of the conventions the codebase otherwise follows.`,
	CategoryDocumentation: `Focus exclusively on DOCUMENTATION: missing or outdated README content, undocumented public APIs, missing setup or usage instructions, and comments that contradict the code.`,
	CategoryArchitecture:  `Focus exclusively on ARCHITECTURE: tangled dependencies between modules, missing abstraction boundaries, components doing too many jobs, and structural choices that will make the system hard to extend or test.`,
	CategorySuggestion:    `Propose concrete IMPROVEMENTS for this repository. Build on the findings from the earlier review stages listed below: suggest the changes with the highest payoff first. Use severity to express priority (critical = do first, info = nice to have).`,
}

const corpusTemplate = `# REPOSITORY REVIEW TASK

You are reviewing the repository: **{{.RepoName}}**

## REPOSITORY STRUCTURE
{{.FileTree}}

## LANGUAGE BREAKDOWN
{{.LanguageStats}}

## REPOSITORY CODE
{{.Corpus}}
`

const fileSeparator = "\n==============================\n"

// corpusData feeds the corpus template
type corpusData struct {
	RepoName      string
	FileTree      string
	LanguageStats string
	Corpus        string
}

// BuildCorpusPrompt renders the shared repository context block used as the
// user message for every stage.
func BuildCorpusPrompt(repoName string, files []scanner.SelectedFile, stats map[string]int) (string, error) {
	tmpl, err := template.New("corpus").Parse(corpusTemplate)
	if err != nil {
		return "", err
	}

	var corpus strings.Builder
	for _, f := range files {
		corpus.WriteString(fmt.Sprintf("File: %s (%s)\n\n%s", f.Path, f.Language, f.Content))
		corpus.WriteString(fileSeparator)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, corpusData{
		RepoName:      repoName,
		FileTree:      scanner.FileTree(files),
		LanguageStats: scanner.LanguageSummary(stats),
		Corpus:        corpus.String(),
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// BuildCategoryPrompt appends the category focus, and for the suggestions
// stage a digest of the findings accumulated so far, to the corpus prompt.
func BuildCategoryPrompt(corpusPrompt string, category Category, priorFindings []Finding) string {
	var sb strings.Builder
	sb.WriteString(corpusPrompt)
	sb.WriteString("\n---\n\n# YOUR TASK\n\n")
	sb.WriteString(categoryGuidance[category])

	if category == CategorySuggestion && len(priorFindings) > 0 {
		sb.WriteString("\n\n## FINDINGS FROM EARLIER STAGES\n")
		for _, f := range priorFindings {
			sb.WriteString(fmt.Sprintf("- [%s/%s] %s", f.Category, f.Severity, f.Title))
			if f.File != "" {
				sb.WriteString(" (" + f.File + ")")
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// BuildUnderstandingPrompt appends the understanding task to the corpus prompt
func BuildUnderstandingPrompt(corpusPrompt string) string {
	return corpusPrompt + "\n---\n\n# YOUR TASK\n\nDescribe what this project does, its type, tech stack, key features and complexity."
}

// SystemInstruction returns the system prompt for a category stage
func SystemInstruction() string {
	return systemInstruction
}

// UnderstandingInstruction returns the system prompt for the understanding stage
func UnderstandingInstruction() string {
	return understandingInstruction
}
