package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileTree(t *testing.T) {
	files := []SelectedFile{
		{Path: "main.go"},
		{Path: "internal/server/server.go"},
		{Path: "internal/server/handler.go"},
		{Path: "internal/config.go"},
	}

	want := "internal/\n" +
		"  server/\n" +
		"    handler.go\n" +
		"    server.go\n" +
		"  config.go\n" +
		"main.go"

	assert.Equal(t, want, FileTree(files))
}

func TestFileTreeEmpty(t *testing.T) {
	assert.Equal(t, "", FileTree(nil))
}

func TestLanguageSummary(t *testing.T) {
	stats := map[string]int{".py": 2, ".go": 5, ".js": 1}
	assert.Equal(t, ".go: 5, .js: 1, .py: 2", LanguageSummary(stats))
}

func TestLanguageSummaryEmpty(t *testing.T) {
	assert.Equal(t, "", LanguageSummary(nil))
}
