// Package scanner walks a repository snapshot and selects the files eligible
// for review: allow-listed extensions, ignore patterns applied, bounded count.
// Traversal is lexicographic, so repeated scans of an unchanged tree produce
// an identical ordered selection.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/logging"
)

// Service scans local repository snapshots
type Service struct {
	cfg    config.ReviewConfig
	logger *logging.Logger

	extensions map[string]bool
}

// NewService creates a new scanner service
func NewService(cfg config.ReviewConfig, logger *logging.Logger) *Service {
	extensions := make(map[string]bool, len(cfg.SupportedExtensions))
	for _, ext := range cfg.SupportedExtensions {
		extensions[strings.ToLower(ext)] = true
	}

	return &Service{
		cfg:        cfg,
		logger:     logger,
		extensions: extensions,
	}
}

// Scan walks the tree rooted at root and returns the ordered selection.
func (s *Service) Scan(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("accessing scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	result := &Result{
		LanguageStats: make(map[string]int),
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable directories are skipped, not fatal
			if d != nil && d.IsDir() {
				result.Warnings = append(result.Warnings, Warning{Kind: WarningUnreadable, Path: s.relPath(root, path), Err: walkErr})
				return fs.SkipDir
			}
			result.Warnings = append(result.Warnings, Warning{Kind: WarningUnreadable, Path: s.relPath(root, path), Err: walkErr})
			return nil
		}

		rel := s.relPath(root, path)

		if d.IsDir() {
			if path == root {
				return nil
			}
			if d.Name() == ".git" || s.shouldIgnore(rel+"/", d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		if !s.isSupported(d.Name()) || s.shouldIgnore(rel, d.Name()) {
			return nil
		}

		// Only a qualifying file past the cap counts as truncation
		if len(result.Files) >= s.cfg.MaxFiles {
			result.Truncated = true
			return fs.SkipAll
		}

		file, warning := s.readFile(root, rel)
		if warning != nil {
			result.Warnings = append(result.Warnings, *warning)
			return nil
		}

		result.Files = append(result.Files, *file)
		result.LanguageStats[file.Extension]++
		result.TotalBytes += file.Size
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	s.logger.Info("scan completed",
		"files", len(result.Files),
		"warnings", len(result.Warnings),
		"bytes", result.TotalBytes,
		"truncated", result.Truncated,
	)

	return result, nil
}

// relPath converts an absolute walk path to a slash-separated relative path
func (s *Service) relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// isSupported checks the file extension against the allow-list
func (s *Service) isSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	return s.extensions[ext]
}

// shouldIgnore checks a relative path against the configured ignore patterns.
// A pattern matches when its cleaned form occurs in a directory segment or
// when the pattern globs the base name. File names themselves are never
// matched against directory patterns.
func (s *Service) shouldIgnore(rel, base string) bool {
	segments := strings.Split(strings.TrimSuffix(rel, "/"), "/")

	// Directory patterns match directory segments only, never file names
	dirSegments := segments
	if !strings.HasSuffix(rel, "/") {
		dirSegments = segments[:len(segments)-1]
	}

	for _, pattern := range s.cfg.IgnorePatterns {
		clean := strings.Trim(pattern, "*/")
		if clean == "" {
			continue
		}

		for _, segment := range dirSegments {
			if strings.Contains(segment, clean) {
				return true
			}
		}

		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}

	return false
}

// readFile reads a candidate file, returning either the selected file or the
// warning explaining why it was skipped.
func (s *Service) readFile(root, rel string) (*SelectedFile, *Warning) {
	if enry.IsVendor(rel) {
		return nil, &Warning{Kind: WarningVendored, Path: rel}
	}

	full := filepath.Join(root, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	if err != nil {
		return nil, &Warning{Kind: WarningUnreadable, Path: rel, Err: err}
	}

	if info.Size() > s.cfg.MaxFileBytes {
		return nil, &Warning{Kind: WarningTooLarge, Path: rel}
	}

	raw, err := os.ReadFile(full)
	if err != nil {
		return nil, &Warning{Kind: WarningUnreadable, Path: rel, Err: err}
	}

	if enry.IsBinary(raw) {
		return nil, &Warning{Kind: WarningBinary, Path: rel}
	}

	if !utf8.Valid(raw) {
		return nil, &Warning{Kind: WarningNotUTF8, Path: rel}
	}

	content := string(raw)
	language := enry.GetLanguage(filepath.Base(rel), raw)
	if language == "" {
		language = "Unknown"
	}

	return &SelectedFile{
		Path:      rel,
		Extension: strings.ToLower(filepath.Ext(rel)),
		Language:  language,
		Content:   content,
		Size:      info.Size(),
		Lines:     strings.Count(content, "\n") + 1,
	}, nil
}
