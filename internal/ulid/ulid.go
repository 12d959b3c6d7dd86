// Package ulid generates prefixed, lexicographically sortable identifiers
// for runs and findings, backed by github.com/oklog/ulid/v2.
package ulid

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefixes for the different identifier kinds
const (
	// PrefixRun identifies a single review run
	PrefixRun = "run"

	// PrefixFinding identifies an individual finding
	PrefixFinding = "find"

	// PrefixSeparator separates the prefix from the ULID body
	PrefixSeparator = "-"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// New generates a new ULID string with the given prefix
func New(prefix string) string {
	entropyLock.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	entropyLock.Unlock()

	if prefix == "" {
		return id.String()
	}
	return prefix + PrefixSeparator + id.String()
}

// RunID generates an identifier for a review run
func RunID() string {
	return New(PrefixRun)
}

// FindingID generates an identifier for a finding
func FindingID() string {
	return New(PrefixFinding)
}

// Prefix extracts the prefix from a prefixed ULID, or "" if it has none
func Prefix(id string) string {
	idx := strings.Index(id, PrefixSeparator)
	if idx <= 0 {
		return ""
	}
	return id[:idx]
}

// IsValid reports whether id is a valid, optionally prefixed, ULID
func IsValid(id string) bool {
	body := id
	if idx := strings.Index(id, PrefixSeparator); idx > 0 {
		body = id[idx+len(PrefixSeparator):]
	}
	_, err := ulid.ParseStrict(body)
	return err == nil
}
