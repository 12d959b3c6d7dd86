package review

import (
	"sort"

	"github.com/repolens/repolens/internal/cost"
	"github.com/repolens/repolens/internal/scanner"
)

// FitToBudget keeps as many files as possible under maxTokens, preferring
// smaller files so the review still covers the broadest slice of the
// repository. Included files come back in their original path order;
// excluded files are returned separately so the report can name them.
func FitToBudget(files []scanner.SelectedFile, maxTokens int) (included, excluded []scanner.SelectedFile) {
	if maxTokens <= 0 {
		return files, nil
	}

	bySize := make([]scanner.SelectedFile, len(files))
	copy(bySize, files)
	sort.SliceStable(bySize, func(i, j int) bool {
		return bySize[i].Size < bySize[j].Size
	})

	keep := make(map[string]bool, len(bySize))
	budget := maxTokens
	for _, f := range bySize {
		tokens := cost.FileTokens(f)
		if tokens > budget {
			continue
		}
		budget -= tokens
		keep[f.Path] = true
	}

	for _, f := range files {
		if keep[f.Path] {
			included = append(included, f)
		} else {
			excluded = append(excluded, f)
		}
	}
	return included, excluded
}
