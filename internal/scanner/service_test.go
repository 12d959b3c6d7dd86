package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/logging"
)

func testConfig() config.ReviewConfig {
	return config.ReviewConfig{
		SupportedExtensions: []string{".go", ".py", ".js"},
		IgnorePatterns:      []string{"node_modules/", "vendor/", "*.min.js"},
		MaxFiles:            100,
		MaxFileBytes:        1024,
		MaxContextTokens:    100_000,
	}
}

func newTestService(cfg config.ReviewConfig) *Service {
	return NewService(cfg, logging.NewNoopLogger())
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func paths(files []SelectedFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestScanSelectsAllowedExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "util.py", "print('hi')\n")
	writeFile(t, root, "README.md", "# readme\n")
	writeFile(t, root, "Makefile", "all:\n")

	result, err := newTestService(testConfig()).Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go", "util.py"}, paths(result.Files))
	assert.False(t, result.Truncated)
	assert.Empty(t, result.Warnings)
}

func TestScanIgnoresPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.go", "package app\n")
	writeFile(t, root, "node_modules/lib/index.js", "module.exports = {}\n")
	writeFile(t, root, "vendor/dep/dep.go", "package dep\n")
	writeFile(t, root, "static/app.min.js", "var a=1\n")

	result, err := newTestService(testConfig()).Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"app.go"}, paths(result.Files))
}

func TestScanIgnorePatternsOnlyMatchDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.go", "package app\n")
	writeFile(t, root, "redistribute.go", "package app\n")
	writeFile(t, root, "targets.go", "package app\n")
	writeFile(t, root, "dist/bundle.go", "package bundle\n")
	writeFile(t, root, "target/out.go", "package out\n")

	cfg := testConfig()
	cfg.IgnorePatterns = []string{"dist/", "target/"}

	result, err := newTestService(cfg).Scan(root)
	require.NoError(t, err)

	// Directory patterns must never exclude files whose names merely
	// contain the pattern text.
	assert.Equal(t, []string{"app.go", "redistribute.go", "targets.go"}, paths(result.Files))
}

func TestScanSkipsGitDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, ".git/hooks/pre-commit.py", "print('hook')\n")

	result, err := newTestService(testConfig()).Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go"}, paths(result.Files))
}

func TestScanMaxFilesCap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package a\n")
	writeFile(t, root, "b.go", "package b\n")
	writeFile(t, root, "c.go", "package c\n")

	cfg := testConfig()
	cfg.MaxFiles = 2

	result, err := newTestService(cfg).Scan(root)
	require.NoError(t, err)

	assert.Len(t, result.Files, 2)
	assert.True(t, result.Truncated, "hitting the cap must be flagged")
	// Lexicographic traversal keeps the cut deterministic
	assert.Equal(t, []string{"a.go", "b.go"}, paths(result.Files))
}

func TestScanCapExactlyFilledIsNotTruncated(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package a\n")
	writeFile(t, root, "b.go", "package b\n")
	writeFile(t, root, "z.txt", "notes\n")

	cfg := testConfig()
	cfg.MaxFiles = 2

	result, err := newTestService(cfg).Scan(root)
	require.NoError(t, err)

	// z.txt is walked after the cap fills but never qualifies, so
	// nothing was actually dropped.
	assert.Equal(t, []string{"a.go", "b.go"}, paths(result.Files))
	assert.False(t, result.Truncated)
}

func TestScanSkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.go", "package small\n")

	big := make([]byte, 2048)
	for i := range big {
		big[i] = 'x'
	}
	writeFile(t, root, "big.go", string(big))

	result, err := newTestService(testConfig()).Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"small.go"}, paths(result.Files))
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningTooLarge, result.Warnings[0].Kind)
	assert.Equal(t, "big.go", result.Warnings[0].Path)
}

func TestScanSkipsBinaryFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "code.go", "package code\n")
	writeFile(t, root, "blob.py", "\x00\x01\x02binary")

	result, err := newTestService(testConfig()).Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"code.go"}, paths(result.Files))
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningBinary, result.Warnings[0].Kind)
}

func TestScanSkipsVendoredFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "code.go", "package code\n")
	writeFile(t, root, "assets/jquery.js", "var jQuery = {}\n")

	result, err := newTestService(testConfig()).Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"code.go"}, paths(result.Files))
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningVendored, result.Warnings[0].Kind)
	assert.Equal(t, "assets/jquery.js", result.Warnings[0].Path)
}

func TestScanDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "z.go", "package z\n")
	writeFile(t, root, "sub/a.go", "package a\n")
	writeFile(t, root, "b.go", "package b\n")

	svc := newTestService(testConfig())

	first, err := svc.Scan(root)
	require.NoError(t, err)
	second, err := svc.Scan(root)
	require.NoError(t, err)

	assert.Equal(t, paths(first.Files), paths(second.Files))
	assert.Equal(t, []string{"b.go", "sub/a.go", "z.go"}, paths(first.Files))
}

func TestScanCollectsMetadata(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	result, err := newTestService(testConfig()).Scan(root)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	f := result.Files[0]
	assert.Equal(t, ".go", f.Extension)
	assert.Equal(t, "Go", f.Language)
	assert.Equal(t, 4, f.Lines)
	assert.Equal(t, int64(len("package main\n\nfunc main() {}\n")), f.Size)
	assert.Equal(t, 1, result.LanguageStats[".go"])
	assert.Equal(t, f.Size, result.TotalBytes)
}

func TestScanRootMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.go", "package file\n")

	_, err := newTestService(testConfig()).Scan(filepath.Join(root, "file.go"))
	assert.Error(t, err)

	_, err = newTestService(testConfig()).Scan(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestScanEmptyRepository(t *testing.T) {
	result, err := newTestService(testConfig()).Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.Truncated)
}
