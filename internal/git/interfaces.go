package git

import (
	"context"
	"iter"
)

// Repository defines the interface for reading the history of one repository.
// This abstraction allows for easier testing and potential alternative implementations.
type Repository interface {
	// Path returns the filesystem location the repository was opened from.
	Path() string
	// References lists the branch, tag and remote-tracking references that
	// resolve to a commit, sorted by full name.
	References() ([]string, error)
	// Walk lazily yields the history reachable from ref in the library's
	// native revision-walk order. An empty ref walks from HEAD.
	Walk(ctx context.Context, ref string) iter.Seq2[RawCommit, error]
}

// Compile-time interface conformance checks.
var (
	_ Repository = (*HistoryRepository)(nil)
	_ Repository = (*MockRepository)(nil)
)
