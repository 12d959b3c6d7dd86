package cost

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repolens/repolens/internal/scanner"
)

func testParams() Params {
	return Params{
		InputPricePerMillion:  2.50,
		OutputPricePerMillion: 10.00,
		MaxOutputTokens:       4096,
		CategoryCount:         8,
	}
}

func TestFileTokens(t *testing.T) {
	assert.Equal(t, 0, FileTokens(scanner.SelectedFile{}))
	assert.Equal(t, 1, FileTokens(scanner.SelectedFile{Content: "ab"}))
	assert.Equal(t, 1, FileTokens(scanner.SelectedFile{Content: "abcd"}))
	assert.Equal(t, 2, FileTokens(scanner.SelectedFile{Content: "abcde"}))
}

func TestTextTokens(t *testing.T) {
	assert.Equal(t, 0, TextTokens(""))
	assert.Equal(t, 25, TextTokens(strings.Repeat("x", 100)))
}

func TestEstimateRunEmpty(t *testing.T) {
	est := EstimateRun(nil, testParams())

	assert.Equal(t, 0, est.FileCount)
	// Even an empty corpus pays the instruction overhead per prompt
	assert.Equal(t, promptOverheadTokens*8, est.InputTokens)
	assert.Equal(t, 4096*8, est.OutputTokens)
	assert.Equal(t, est.InputTokens+est.OutputTokens, est.TotalTokens)
}

func TestEstimateRun(t *testing.T) {
	files := []scanner.SelectedFile{
		{Path: "a.go", Content: strings.Repeat("a", 4000)}, // 1000 tokens
		{Path: "b.go", Content: strings.Repeat("b", 2000)}, // 500 tokens
	}

	est := EstimateRun(files, testParams())

	assert.Equal(t, 2, est.FileCount)
	assert.Equal(t, 1500+promptOverheadTokens, est.TokensPerPrompt)
	assert.Equal(t, (1500+promptOverheadTokens)*8, est.InputTokens)

	wantInputCost := float64(est.InputTokens) * 2.50 / 1_000_000
	wantOutputCost := float64(est.OutputTokens) * 10.00 / 1_000_000
	assert.InDelta(t, wantInputCost, est.InputCostUSD, 1e-9)
	assert.InDelta(t, wantOutputCost, est.OutputCostUSD, 1e-9)
	assert.InDelta(t, wantInputCost+wantOutputCost, est.TotalCostUSD, 1e-9)
}

func TestEstimateRunDeterministic(t *testing.T) {
	files := []scanner.SelectedFile{
		{Path: "a.go", Content: "package main\n"},
		{Path: "b.go", Content: "package util\n"},
	}

	first := EstimateRun(files, testParams())
	second := EstimateRun(files, testParams())
	assert.Equal(t, first, second, "estimation must be a pure function of its inputs")
}

func TestEstimateRunScalesWithCategories(t *testing.T) {
	files := []scanner.SelectedFile{{Path: "a.go", Content: strings.Repeat("a", 400)}}

	params := testParams()
	params.CategoryCount = 1
	single := EstimateRun(files, params)

	params.CategoryCount = 4
	quad := EstimateRun(files, params)

	assert.Equal(t, single.InputTokens*4, quad.InputTokens)
	assert.Equal(t, single.OutputTokens*4, quad.OutputTokens)
}
