package git

import (
	"context"
	"iter"
	"sort"
)

// MockRepository is a test double for HistoryRepository.
// It allows tests to provide predefined commit data without needing a real Git repository.
type MockRepository struct {
	PathValue string
	// History maps a reference name to its commits; "" is HEAD.
	History map[string][]RawCommit
	Error   error
}

// NewMockRepository creates a new MockRepository with the given data.
func NewMockRepository(path string, history map[string][]RawCommit, err error) *MockRepository {
	return &MockRepository{
		PathValue: path,
		History:   history,
		Error:     err,
	}
}

// Path returns the configured path.
func (m *MockRepository) Path() string {
	return m.PathValue
}

// References returns every non-HEAD key of History, sorted.
func (m *MockRepository) References() ([]string, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	names := make([]string, 0, len(m.History))
	for name := range m.History {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Walk yields the predefined commits for ref, or the configured error.
func (m *MockRepository) Walk(ctx context.Context, ref string) iter.Seq2[RawCommit, error] {
	return func(yield func(RawCommit, error) bool) {
		if m.Error != nil {
			yield(RawCommit{}, m.Error)
			return
		}
		commits, ok := m.History[ref]
		if !ok {
			name := ref
			if name == "" {
				name = "HEAD"
			}
			yield(RawCommit{}, &ReferenceNotFoundError{Name: name})
			return
		}
		for _, c := range commits {
			if err := ctx.Err(); err != nil {
				yield(RawCommit{}, err)
				return
			}
			if !yield(c, nil) {
				return
			}
		}
	}
}
