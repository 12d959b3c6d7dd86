package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/logging"
)

func newTestService() *Service {
	return NewService(config.GitHubConfig{RequestTimeout: 30 * time.Second}, logging.NewNoopLogger())
}

func TestParseRepoName(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantName  string
		wantErr   bool
	}{
		{"https URL", "https://github.com/acme/widget", "acme", "widget", false},
		{"https with .git", "https://github.com/acme/widget.git", "acme", "widget", false},
		{"trailing slash", "https://github.com/acme/widget/", "acme", "widget", false},
		{"other host", "https://gitlab.com/group/project", "group", "project", false},
		{"no path", "https://github.com", "", "", true},
		{"empty", "", "", "", true},
		{"just a word", "widget", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, name, err := ParseRepoName(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestSnapshotFullName(t *testing.T) {
	s := &Snapshot{Owner: "acme", Name: "widget"}
	assert.Equal(t, "acme/widget", s.FullName())
}

func TestFetchErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &FetchError{URL: "https://github.com/acme/widget", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "acme/widget")

	var fetchErr *FetchError
	assert.ErrorAs(t, error(err), &fetchErr)
}

func TestCleanup(t *testing.T) {
	svc := newTestService()

	dir := filepath.Join(t.TempDir(), "clone")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "objects"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))

	// Packed git objects are typically read-only
	packed := filepath.Join(dir, ".git", "objects", "pack")
	require.NoError(t, os.WriteFile(packed, []byte("data"), 0o444))

	require.NoError(t, svc.Cleanup(dir))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "clone directory should be gone")
}

func TestCleanupIdempotent(t *testing.T) {
	svc := newTestService()

	dir := filepath.Join(t.TempDir(), "never-created")
	assert.NoError(t, svc.Cleanup(dir), "missing path is not an error")
	assert.NoError(t, svc.Cleanup(dir), "repeated cleanup is not an error")
	assert.NoError(t, svc.Cleanup(""), "empty path is a no-op")
}

func TestCheckRepoExistsSkipsNonGitHub(t *testing.T) {
	svc := newTestService()

	// Non-GitHub hosts are not checked; the clone attempt decides
	assert.NoError(t, svc.CheckRepoExists(t.Context(), "https://gitlab.com/group/project"))
}
