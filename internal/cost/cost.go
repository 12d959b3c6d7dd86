// Package cost estimates the LLM spend of a review run before it starts.
// Estimation is a pure computation over the selected files; it performs no
// I/O and no network calls, so it can back a preview/confirm step.
package cost

import (
	"github.com/repolens/repolens/internal/scanner"
)

// Tokens are approximated as characters divided by four. This tracks the
// common English/code average closely enough for a spend preview.
const charsPerToken = 4

// promptOverheadTokens approximates the fixed instruction text sent with
// each category prompt, on top of the file contents.
const promptOverheadTokens = 900

// Estimate projects the token usage and monetary cost of a full review run
type Estimate struct {
	FileCount       int     `json:"file_count"`
	InputTokens     int     `json:"input_tokens"`
	OutputTokens    int     `json:"output_tokens"`
	TotalTokens     int     `json:"total_tokens"`
	InputCostUSD    float64 `json:"input_cost_usd"`
	OutputCostUSD   float64 `json:"output_cost_usd"`
	TotalCostUSD    float64 `json:"total_cost_usd"`
	CategoryCount   int     `json:"category_count"`
	TokensPerPrompt int     `json:"tokens_per_prompt"`
}

// Params configures an estimate
type Params struct {
	InputPricePerMillion  float64 // USD per 1M input tokens
	OutputPricePerMillion float64 // USD per 1M output tokens
	MaxOutputTokens       int     // Expected output tokens per category call
	CategoryCount         int     // Number of sequential category prompts
}

// FileTokens approximates the token count of a single file
func FileTokens(f scanner.SelectedFile) int {
	return tokensForChars(len(f.Content))
}

// TextTokens approximates the token count of an arbitrary string
func TextTokens(text string) int {
	return tokensForChars(len(text))
}

// EstimateRun computes the projected cost of reviewing the given files.
// The same input always yields the same estimate.
func EstimateRun(files []scanner.SelectedFile, params Params) Estimate {
	contentTokens := 0
	for _, f := range files {
		contentTokens += FileTokens(f)
	}

	perPrompt := contentTokens + promptOverheadTokens
	inputTokens := perPrompt * params.CategoryCount
	outputTokens := params.MaxOutputTokens * params.CategoryCount

	inputCost := float64(inputTokens) * params.InputPricePerMillion / 1_000_000
	outputCost := float64(outputTokens) * params.OutputPricePerMillion / 1_000_000

	return Estimate{
		FileCount:       len(files),
		InputTokens:     inputTokens,
		OutputTokens:    outputTokens,
		TotalTokens:     inputTokens + outputTokens,
		InputCostUSD:    inputCost,
		OutputCostUSD:   outputCost,
		TotalCostUSD:    inputCost + outputCost,
		CategoryCount:   params.CategoryCount,
		TokensPerPrompt: perPrompt,
	}
}

func tokensForChars(chars int) int {
	if chars <= 0 {
		return 0
	}
	return (chars + charsPerToken - 1) / charsPerToken
}
