package scan

import (
	"io/fs"
	"path"
)

// prunedFS hides directories matched by exclude from directory listings, so
// a walk over it never descends into them.
type prunedFS struct {
	fs.FS
	exclude func(rel string) bool
}

// ReadDir implements fs.ReadDirFS.
func (p prunedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := fs.ReadDir(p.FS, name)
	if err != nil {
		return nil, err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.IsDir() || e.Type()&fs.ModeSymlink != 0 {
			if p.exclude(path.Join(name, e.Name())) {
				continue
			}
		}
		kept = append(kept, e)
	}
	return kept, nil
}
