// Package scan discovers repository roots on the local filesystem.
package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/masmgr/commitharvest/internal/git"
)

// headPattern finds every file named HEAD; metadata directories always have one.
const headPattern = "**/HEAD"

// ScanError describes a path that was skipped during discovery.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Options configures a Scanner.
type Options struct {
	FollowSymlinks bool
	// Exclude holds doublestar patterns matched against directories relative
	// to the scanned root, e.g. "**/node_modules/**". Matching directories are
	// not descended into.
	Exclude []string
	Logger  *slog.Logger
}

// Scanner finds repository roots.
type Scanner struct {
	opts    Options
	log     *slog.Logger
	isValid func(string) bool
}

// NewScanner creates a scanner that validates candidates with git.IsValidMetadataDir.
func NewScanner(opts Options) *Scanner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{opts: opts, log: logger, isValid: git.IsValidMetadataDir}
}

// Result is the outcome of a scan: the resolved, deduplicated roots in
// lexical order plus the paths that had to be skipped.
type Result struct {
	Roots   []string
	Skipped []*ScanError
}

type rootSet struct {
	seen    map[string]struct{}
	skipped []*ScanError
}

func newRootSet() *rootSet {
	return &rootSet{seen: make(map[string]struct{})}
}

func (s *rootSet) add(p string) {
	real, err := resolve(p)
	if err != nil {
		s.skip(p, err)
		return
	}
	s.seen[real] = struct{}{}
}

func (s *rootSet) skip(p string, err error) {
	s.skipped = append(s.skipped, &ScanError{Path: p, Err: err})
}

func (s *rootSet) result() Result {
	roots := make([]string, 0, len(s.seen))
	for r := range s.seen {
		roots = append(roots, r)
	}
	sort.Strings(roots)
	return Result{Roots: roots, Skipped: s.skipped}
}

// Scan walks every root recursively and returns the repositories found.
// Unreadable subtrees and broken links are skipped; the scan never fails as
// a whole.
func (s *Scanner) Scan(roots []string) Result {
	set := newRootSet()
	for _, root := range roots {
		s.scanRoot(root, set)
	}
	s.report(set)
	return set.result()
}

// ScanSources treats the immediate children of each source directory as
// candidate working trees; children without a valid .git directory are ignored.
func (s *Scanner) ScanSources(sources []string) Result {
	set := newRootSet()
	for _, src := range sources {
		entries, err := os.ReadDir(src)
		if err != nil {
			set.skip(src, err)
			continue
		}
		for _, e := range entries {
			child := filepath.Join(src, e.Name())
			if s.excluded(e.Name()) {
				continue
			}
			if s.isValid(filepath.Join(child, git.MetadataDirName)) {
				set.add(child)
			}
		}
	}
	s.report(set)
	return set.result()
}

// Merge combines results, keeping roots unique and sorted.
func Merge(results ...Result) Result {
	set := newRootSet()
	for _, r := range results {
		for _, root := range r.Roots {
			set.seen[root] = struct{}{}
		}
		set.skipped = append(set.skipped, r.Skipped...)
	}
	return set.result()
}

func (s *Scanner) scanRoot(root string, set *rootSet) {
	base, err := resolve(root)
	if err != nil {
		set.skip(root, err)
		return
	}

	var walkOpts []doublestar.GlobOption
	if !s.opts.FollowSymlinks {
		walkOpts = append(walkOpts, doublestar.WithNoFollow())
	}

	var fsys fs.FS = os.DirFS(base)
	if len(s.opts.Exclude) > 0 {
		fsys = prunedFS{FS: fsys, exclude: s.excluded}
	}

	err = doublestar.GlobWalk(fsys, headPattern, func(p string, d fs.DirEntry) error {
		if d != nil && d.IsDir() {
			return nil
		}
		rel := path.Dir(p)
		if s.excluded(rel) {
			return nil
		}

		dir := filepath.Join(base, filepath.FromSlash(rel))
		if !s.isValid(dir) {
			return nil
		}
		if filepath.Base(dir) == git.MetadataDirName {
			dir = filepath.Dir(dir)
		}
		set.add(dir)
		return nil
	}, walkOpts...)
	if err != nil {
		set.skip(root, err)
	}
}

func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (s *Scanner) report(set *rootSet) {
	for _, e := range set.skipped {
		s.log.Debug("skipped path", "path", e.Path, "err", e.Err)
	}
}

func resolve(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
