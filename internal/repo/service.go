// Package repo fetches remote repositories into temporary local clones and
// releases them when a run finishes.
package repo

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/logging"
	"github.com/repolens/repolens/internal/utils"
)

// Service provides repository fetch and cleanup operations
type Service struct {
	tempDir string
	github  *github.Client
	timeout time.Duration
	logger  *logging.Logger
}

// NewService creates a new fetcher service
func NewService(cfg config.GitHubConfig, logger *logging.Logger) *Service {
	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &Service{
		tempDir: os.TempDir(),
		github:  github.NewClient(httpClient),
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}
}

// ParseRepoName extracts the owner and repository name from a remote URL
func ParseRepoName(repoURL string) (owner, name string, err error) {
	trimmed := strings.TrimSuffix(strings.TrimRight(repoURL, "/"), ".git")

	// Handle scp-like SSH syntax (git@github.com:owner/name)
	if idx := strings.LastIndex(trimmed, ":"); idx > 0 && !strings.Contains(trimmed[idx:], "/") {
		return "", "", fmt.Errorf("unsupported repository URL: %s", repoURL)
	}
	trimmed = strings.ReplaceAll(trimmed, ":", "/")

	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("cannot parse owner/name from URL: %s", repoURL)
	}

	owner = parts[len(parts)-2]
	name = parts[len(parts)-1]
	if owner == "" || name == "" {
		return "", "", fmt.Errorf("cannot parse owner/name from URL: %s", repoURL)
	}

	return owner, name, nil
}

// CheckRepoExists verifies that a GitHub-hosted repository exists and is
// accessible before attempting a clone. Non-GitHub hosts are skipped.
func (s *Service) CheckRepoExists(ctx context.Context, repoURL string) error {
	if !strings.Contains(repoURL, "github.com") {
		return nil
	}

	owner, name, err := ParseRepoName(repoURL)
	if err != nil {
		return &FetchError{URL: repoURL, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, resp, err := s.github.Repositories.Get(ctx, owner, name)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return &FetchError{URL: repoURL, Err: fmt.Errorf("repository not found or not accessible (status %d)", resp.StatusCode)}
		}
		// Network trouble reaching the API is not proof the repo is absent;
		// let the clone attempt decide.
		s.logger.Warn("GitHub preflight check failed, continuing to clone", "url", repoURL, "error", err)
		return nil
	}

	s.logger.Debug("repository exists and is accessible", "repo", owner+"/"+name)
	return nil
}

// Clone fetches a shallow copy of the repository into a fresh temporary
// directory and returns a Snapshot describing it.
func (s *Service) Clone(ctx context.Context, repoURL string) (*Snapshot, error) {
	owner, name, err := ParseRepoName(repoURL)
	if err != nil {
		return nil, &FetchError{URL: repoURL, Err: err}
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return nil, &FetchError{URL: repoURL, Err: fmt.Errorf("generating clone suffix: %w", err)}
	}

	dirName := fmt.Sprintf("repolens-%s-%s-%s",
		utils.SanitizeName(owner), utils.SanitizeName(name), hex.EncodeToString(suffix))
	localPath := filepath.Join(s.tempDir, dirName)

	s.logger.Info("cloning repository", "url", repoURL, "path", localPath)

	_, err = git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{
		URL:          repoURL,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	})
	if err != nil {
		// A failed clone may leave a partial directory behind
		_ = os.RemoveAll(localPath)
		return nil, &FetchError{URL: repoURL, Err: err}
	}

	return &Snapshot{
		URL:       repoURL,
		Owner:     owner,
		Name:      name,
		RunName:   utils.GenerateRunName(),
		LocalPath: localPath,
		ClonedAt:  time.Now(),
	}, nil
}

// Cleanup deletes a local clone. It is idempotent: a missing path is not an
// error. Read-only object files under .git are made writable first.
func (s *Service) Cleanup(localPath string) error {
	if localPath == "" {
		return nil
	}

	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return nil
	}

	makeWritable(localPath)

	if err := os.RemoveAll(localPath); err != nil {
		return fmt.Errorf("removing clone at %s: %w", localPath, err)
	}

	s.logger.Debug("removed clone", "path", localPath)
	return nil
}

// makeWritable clears read-only bits so RemoveAll succeeds on packed git objects
func makeWritable(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode().Perm()&0200 == 0 {
			_ = os.Chmod(path, info.Mode().Perm()|0200)
		}
		return nil
	})
}
