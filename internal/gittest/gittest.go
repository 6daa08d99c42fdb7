// Package gittest builds throwaway Git repositories for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Signature returns a commit signature for name <email> at when.
func Signature(name, email string, when time.Time) *object.Signature {
	return &object.Signature{Name: name, Email: email, When: when}
}

// InitRepo creates a repository in dir, creating dir if needed.
func InitRepo(t testing.TB, dir string, bare bool) *gogit.Repository {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	repo, err := gogit.PlainInit(dir, bare)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}
	return repo
}

// Commit writes content to file and commits it with sig as both author and
// committer. Identical inputs on identical parents produce identical hashes,
// which is how tests model forks without cloning.
func Commit(t testing.TB, repo *gogit.Repository, file, content, message string, sig *object.Signature) plumbing.Hash {
	t.Helper()
	return CommitAs(t, repo, file, content, message, sig, sig)
}

// CommitAs is Commit with distinct author and committer signatures.
func CommitAs(t testing.TB, repo *gogit.Repository, file, content, message string, author, committer *object.Signature) plumbing.Hash {
	t.Helper()

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	full := filepath.Join(w.Filesystem.Root(), file)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := w.Add(file); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}

	hash, err := w.Commit(message, &gogit.CommitOptions{
		Author:    author,
		Committer: committer,
	})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
	return hash
}

// Checkout switches the worktree to branch, creating it from HEAD when create is set.
func Checkout(t testing.TB, repo *gogit.Repository, branch string, create bool) {
	t.Helper()

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if err := w.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	}); err != nil {
		t.Fatalf("Checkout(%s): %v", branch, err)
	}
}

// Tag creates an annotated tag named name on target.
func Tag(t testing.TB, repo *gogit.Repository, name string, target plumbing.Hash, tagger *object.Signature) {
	t.Helper()

	if _, err := repo.CreateTag(name, target, &gogit.CreateTagOptions{
		Tagger:  tagger,
		Message: name,
	}); err != nil {
		t.Fatalf("CreateTag(%s): %v", name, err)
	}
}
