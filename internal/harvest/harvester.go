// Package harvest extracts the tracked person's commits from many
// repositories and reduces them to one deduplicated, time-ordered stream.
package harvest

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/masmgr/commitharvest/internal/git"
	"github.com/masmgr/commitharvest/internal/identity"
)

// Options configures a Harvester.
type Options struct {
	Identity identity.Descriptor
	// AllRefs walks every reference instead of HEAD only.
	AllRefs bool
	// Workers bounds concurrent repository extractions; <= 0 means 2*NumCPU.
	Workers int
	// RepoTimeout bounds the history walk of one repository; 0 disables it.
	RepoTimeout time.Duration
	// DefaultBranches name the branches whose absence is tolerated: a
	// repository whose HEAD points at a missing default branch is skipped.
	DefaultBranches []string
	Logger          *slog.Logger
	// Open opens a repository; defaults to git.Open.
	Open func(path string) (git.Repository, error)
}

// Harvester runs extraction over many repositories.
type Harvester struct {
	opts      Options
	extractor *Extractor
	log       *slog.Logger
}

// New creates a Harvester.
func New(opts Options) *Harvester {
	if opts.Workers <= 0 {
		opts.Workers = 2 * runtime.NumCPU()
	}
	if opts.Open == nil {
		opts.Open = func(path string) (git.Repository, error) {
			return git.Open(path)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Harvester{
		opts:      opts,
		extractor: NewExtractor(opts.Identity),
		log:       logger,
	}
}

// Harvest extracts every location concurrently, then deduplicates and merges
// the results once all extractions have finished. Unreadable repositories and
// repositories missing their default branch are logged and skipped. An
// ambiguous author identity, a non-fixed timestamp zone or any other missing
// reference aborts the harvest.
func (h *Harvester) Harvest(ctx context.Context, locations []Location) ([]Commit, error) {
	h.log.Debug("harvest started",
		"repositories", len(locations),
		"emails", h.opts.Identity.Emails(),
		"names", h.opts.Identity.Names(),
		"allRefs", h.opts.AllRefs,
	)
	results := make([][]Commit, len(locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.opts.Workers)

	for i, loc := range locations {
		g.Go(func() error {
			commits, err := h.harvestOne(gctx, loc)
			if err != nil {
				return err
			}
			results[i] = commits
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Concatenate in location order so first-encountered ties are deterministic.
	all := slices.Concat(results...)
	merged := Merge(Deduplicate(all))

	h.log.Info("harvest complete",
		"repositories", len(locations),
		"records", len(all),
		"commits", len(merged),
	)
	return merged, nil
}

func (h *Harvester) harvestOne(ctx context.Context, loc Location) ([]Commit, error) {
	commits, err := h.Extract(ctx, loc)
	if err == nil {
		h.log.Debug("extracted repository", "repo", loc.Name, "path", loc.Root, "commits", len(commits))
		return commits, nil
	}

	var (
		ambiguous *AmbiguousIdentityError
		missing   *MissingReferenceError
		readErr   *RepositoryReadError
	)
	switch {
	case errors.As(err, &ambiguous), errors.Is(err, ErrNonFixedOffset):
		return nil, err
	case errors.As(err, &missing):
		if h.isDefaultBranch(missing.Ref) {
			h.log.Info("skipping repository without default branch", "repo", loc.Name, "path", loc.Root, "ref", missing.Ref)
			return nil, nil
		}
		return nil, err
	case ctx.Err() != nil:
		// The harvest is already failing; keep the original cause.
		return nil, ctx.Err()
	case errors.As(err, &readErr):
		h.log.Warn("skipping unreadable repository", "repo", loc.Name, "path", loc.Root, "err", readErr.Err)
		return nil, nil
	default:
		h.log.Warn("skipping repository", "repo", loc.Name, "path", loc.Root, "err", err)
		return nil, nil
	}
}

func (h *Harvester) isDefaultBranch(ref string) bool {
	for _, b := range h.opts.DefaultBranches {
		if ref == "refs/heads/"+b {
			return true
		}
	}
	return false
}

// Extract collects the tracked person's commits from one repository without
// deduplication.
func (h *Harvester) Extract(ctx context.Context, loc Location) ([]Commit, error) {
	if h.opts.RepoTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.RepoTimeout)
		defer cancel()
	}

	repo, err := h.opts.Open(loc.Root)
	if err != nil {
		return nil, &RepositoryReadError{Repo: loc.Name, Path: loc.Root, Err: err}
	}
	h.log.Debug("reading repository", "repo", loc.Name, "path", repo.Path())

	seq := h.extractor.Commits(ctx, repo, loc, "")
	if h.opts.AllRefs {
		seq = h.extractor.AllRefCommits(ctx, repo, loc)
	}

	var out []Commit
	for c, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
