package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// HistoryRepository reads commit history from a Git repository on disk.
type HistoryRepository struct {
	path string
	repo *gogit.Repository
}

// Open opens the repository at path. Path may be a working tree root or a
// metadata directory itself (bare layouts).
func Open(path string) (*HistoryRepository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &HistoryRepository{path: path, repo: repo}, nil
}

// Path returns the path the repository was opened from.
func (r *HistoryRepository) Path() string {
	return r.path
}

// References lists branches, tags and remote-tracking branches. Symbolic
// references are skipped since their targets are listed themselves, and so
// are tags that do not point at a commit.
func (r *HistoryRepository) References() ([]string, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, err
	}
	defer refs.Close()

	var names []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		if !name.IsBranch() && !name.IsTag() && !name.IsRemote() {
			return nil
		}
		if _, err := r.peel(ref.Hash()); err != nil {
			if errors.Is(err, object.ErrUnsupportedObject) {
				return nil
			}
			return err
		}
		names = append(names, name.String())
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

// Walk yields the commits reachable from ref, newest first. The walk stops
// with ctx's error once ctx is done.
func (r *HistoryRepository) Walk(ctx context.Context, ref string) iter.Seq2[RawCommit, error] {
	return func(yield func(RawCommit, error) bool) {
		from, err := r.resolve(ref)
		if err != nil {
			yield(RawCommit{}, err)
			return
		}

		cIter, err := r.repo.Log(&gogit.LogOptions{From: from})
		if err != nil {
			yield(RawCommit{}, err)
			return
		}
		defer cIter.Close()

		for {
			if err := ctx.Err(); err != nil {
				yield(RawCommit{}, err)
				return
			}

			c, err := cIter.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(RawCommit{}, err)
				return
			}

			if !yield(newRawCommit(c), nil) {
				return
			}
		}
	}
}

// resolve maps a reference name to the commit it designates.
func (r *HistoryRepository) resolve(ref string) (plumbing.Hash, error) {
	if ref == "" {
		head, err := r.repo.Head()
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Unborn branch: report the branch HEAD points at.
			name := plumbing.HEAD
			if sym, serr := r.repo.Reference(plumbing.HEAD, false); serr == nil && sym.Type() == plumbing.SymbolicReference {
				name = sym.Target()
			}
			return plumbing.ZeroHash, &ReferenceNotFoundError{Name: name.String()}
		}
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return head.Hash(), nil
	}

	resolved, err := r.repo.Reference(plumbing.ReferenceName(ref), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return plumbing.ZeroHash, &ReferenceNotFoundError{Name: ref}
	}
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return r.peel(resolved.Hash())
}

// peel follows an annotated tag to its commit. Hashes naming neither a tag
// nor a commit, such as a lightweight tag on a tree, yield
// object.ErrUnsupportedObject.
func (r *HistoryRepository) peel(h plumbing.Hash) (plumbing.Hash, error) {
	tag, err := r.repo.TagObject(h)
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		if _, cerr := r.repo.CommitObject(h); cerr != nil {
			if errors.Is(cerr, plumbing.ErrObjectNotFound) {
				return plumbing.ZeroHash, object.ErrUnsupportedObject
			}
			return plumbing.ZeroHash, cerr
		}
		return h, nil
	}
	if err != nil {
		return plumbing.ZeroHash, err
	}
	c, err := tag.Commit()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return c.Hash, nil
}

func newRawCommit(c *object.Commit) RawCommit {
	return RawCommit{
		ContentID:   c.Hash.String(),
		AuthorName:  c.Author.Name,
		AuthorEmail: c.Author.Email,
		AuthorTime:  NewTimestamp(c.Author.When),
		CommitTime:  NewTimestamp(c.Committer.When),
		Message:     c.Message,
	}
}
