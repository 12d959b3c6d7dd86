package repo

import (
	"fmt"
	"time"
)

// Snapshot represents a transient local clone of a remote repository.
// It is created by the fetcher and must be released with Cleanup when the
// run finishes, on every exit path.
type Snapshot struct {
	URL       string    `json:"url"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	RunName   string    `json:"run_name"`
	LocalPath string    `json:"local_path"`
	ClonedAt  time.Time `json:"cloned_at"`
}

// FullName returns the owner/name form of the repository
func (s *Snapshot) FullName() string {
	return s.Owner + "/" + s.Name
}

// FetchError indicates that a repository could not be fetched. It is the
// only error in the pipeline that aborts a run before any selection work.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching repository %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
