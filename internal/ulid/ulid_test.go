package ulid

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	id := New("")
	assert.Len(t, id, 26, "raw ULID should be 26 characters")
	assert.True(t, IsValid(id))
}

func TestNewWithPrefix(t *testing.T) {
	prefixes := []string{PrefixRun, PrefixFinding, "custom"}

	for _, prefix := range prefixes {
		id := New(prefix)
		assert.Equal(t, prefix, Prefix(id), "prefix should round-trip")
		assert.True(t, IsValid(id), "prefixed ULID should be valid")
	}
}

func TestRunID(t *testing.T) {
	id := RunID()
	assert.Equal(t, PrefixRun, Prefix(id))
	assert.True(t, IsValid(id))
}

func TestFindingID(t *testing.T) {
	id := FindingID()
	assert.Equal(t, PrefixFinding, Prefix(id))
	assert.True(t, IsValid(id))
}

func TestUniquenessAndOrdering(t *testing.T) {
	const n = 1000

	ids := make([]string, n)
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		ids[i] = FindingID()
		assert.False(t, seen[ids[i]], "IDs must be unique")
		seen[ids[i]] = true
	}

	// Monotonic entropy keeps generation order and lexicographic order aligned
	assert.True(t, sort.StringsAreSorted(ids), "IDs should sort in generation order")
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"run prefix", "run-01HV3A0000000000000000000", "run"},
		{"no prefix", "01HV3A00000000000000000000", ""},
		{"empty", "", ""},
		{"leading separator", "-01HV3A0000000000000000000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Prefix(tt.id))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(New("")))
	assert.True(t, IsValid(RunID()))
	assert.False(t, IsValid("not-a-ulid"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("run-"))
}
