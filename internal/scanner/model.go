package scanner

import "fmt"

// SelectedFile is a single file chosen for review. It is immutable once read.
type SelectedFile struct {
	Path      string `json:"path"` // Relative to the snapshot root
	Extension string `json:"extension"`
	Language  string `json:"language"`
	Content   string `json:"-"`
	Size      int64  `json:"size"`
	Lines     int    `json:"lines"`
}

// WarningKind classifies non-fatal selection problems
type WarningKind string

const (
	// WarningUnreadable marks a file that could not be read
	WarningUnreadable WarningKind = "unreadable"
	// WarningBinary marks a binary file that was skipped
	WarningBinary WarningKind = "binary"
	// WarningTooLarge marks a file over the per-file size cap
	WarningTooLarge WarningKind = "too_large"
	// WarningNotUTF8 marks a file with invalid text encoding
	WarningNotUTF8 WarningKind = "not_utf8"
	// WarningVendored marks a path enry classifies as vendored code
	WarningVendored WarningKind = "vendored"
)

// Warning records a skipped file. Warnings are report-visible but never fatal.
type Warning struct {
	Kind WarningKind `json:"kind"`
	Path string      `json:"path"`
	Err  error       `json:"-"`
}

func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", w.Path, w.Kind, w.Err)
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Kind)
}

// Result holds the outcome of scanning a snapshot
type Result struct {
	Files         []SelectedFile `json:"files"`
	Warnings      []Warning      `json:"warnings"`
	LanguageStats map[string]int `json:"language_stats"` // Files per extension
	TotalBytes    int64          `json:"total_bytes"`
	Truncated     bool           `json:"truncated"` // True when MaxFiles cut the selection short
}
