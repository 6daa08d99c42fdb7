package harvest

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/masmgr/commitharvest/internal/git"
	"github.com/masmgr/commitharvest/internal/identity"
)

// maxOffsetSeconds bounds the offsets git can record (+/-99:59).
const maxOffsetSeconds = 99*3600 + 59*60

// Extractor turns a repository's history into the tracked person's commits.
type Extractor struct {
	identity identity.Descriptor
}

// NewExtractor creates an extractor filtering on id.
func NewExtractor(id identity.Descriptor) *Extractor {
	return &Extractor{identity: id}
}

// Commits lazily yields the tracked person's commits reachable from ref
// (HEAD when empty), in the repository's revision-walk order. Each call walks
// from scratch. The sequence ends after the first error.
func (e *Extractor) Commits(ctx context.Context, repo git.Repository, loc Location, ref string) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		for raw, err := range repo.Walk(ctx, ref) {
			if err != nil {
				yield(Commit{}, wrapWalkError(loc, err))
				return
			}

			mine, err := e.identity.Includes(identity.Author{Name: raw.AuthorName, Email: raw.AuthorEmail})
			if err != nil {
				yield(Commit{}, fmt.Errorf("commit %s in %s: %w", raw.ContentID, loc.Name, err))
				return
			}
			if !mine {
				continue
			}

			c, err := newCommit(raw, loc, ref)
			if err != nil {
				yield(Commit{}, err)
				return
			}
			if !yield(c, nil) {
				return
			}
		}
	}
}

// AllRefCommits concatenates Commits over every reference of repo. A commit
// reachable from several references is yielded once per reference.
func (e *Extractor) AllRefCommits(ctx context.Context, repo git.Repository, loc Location) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		refs, err := repo.References()
		if err != nil {
			yield(Commit{}, &RepositoryReadError{Repo: loc.Name, Path: loc.Root, Err: fmt.Errorf("list references: %w", err)})
			return
		}
		for _, ref := range refs {
			for c, err := range e.Commits(ctx, repo, loc, ref) {
				if !yield(c, err) || err != nil {
					return
				}
			}
		}
	}
}

func wrapWalkError(loc Location, err error) error {
	var nf *git.ReferenceNotFoundError
	if errors.As(err, &nf) {
		return &MissingReferenceError{Repo: loc.Name, Ref: nf.Name, Err: err}
	}
	return &RepositoryReadError{Repo: loc.Name, Path: loc.Root, Err: err}
}

func newCommit(raw git.RawCommit, loc Location, ref string) (Commit, error) {
	committed, err := normalizeTimestamp(raw.CommitTime)
	if err != nil {
		return Commit{}, fmt.Errorf("commit %s in %s: commit time: %w", raw.ContentID, loc.Name, err)
	}
	authored, err := normalizeTimestamp(raw.AuthorTime)
	if err != nil {
		return Commit{}, fmt.Errorf("commit %s in %s: author time: %w", raw.ContentID, loc.Name, err)
	}

	return Commit{
		CommitTime: committed,
		AuthorTime: authored,
		Message:    strings.TrimSpace(raw.Message),
		Repo:       loc.Name,
		ContentID:  raw.ContentID,
		Ref:        ref,
	}, nil
}

// normalizeTimestamp converts ts to a time in a fixed zone carrying exactly
// the recorded offset. It never falls back to UTC or the local zone.
func normalizeTimestamp(ts git.Timestamp) (time.Time, error) {
	if !ts.Fixed {
		return time.Time{}, ErrNonFixedOffset
	}
	if ts.OffsetSeconds > maxOffsetSeconds || ts.OffsetSeconds < -maxOffsetSeconds {
		return time.Time{}, fmt.Errorf("%w: offset %ds out of range", ErrNonFixedOffset, ts.OffsetSeconds)
	}
	zone := time.FixedZone(offsetName(ts.OffsetSeconds), ts.OffsetSeconds)
	return time.Unix(ts.Unix, 0).In(zone), nil
}

// offsetName renders an offset as "+hh:mm".
func offsetName(offset int) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%c%02d:%02d", sign, offset/3600, offset%3600/60)
}
