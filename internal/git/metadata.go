package git

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// IsValidMetadataDir reports whether path is structurally a git metadata
// directory: a HEAD file plus objects and refs directories. Linked worktree
// directories delegate objects and refs to the directory named in commondir.
func IsValidMetadataDir(path string) bool {
	fs := osfs.New(path)

	head, err := fs.Stat("HEAD")
	if err != nil || head.IsDir() {
		return false
	}

	common := fs
	if dir, ok := readCommonDir(fs); ok {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(path, dir)
		}
		common = osfs.New(dir)
	}

	for _, name := range []string{"objects", "refs"} {
		fi, err := common.Stat(name)
		if err != nil || !fi.IsDir() {
			return false
		}
	}
	return true
}

func readCommonDir(fs billy.Filesystem) (string, bool) {
	f, err := fs.Open("commondir")
	if err != nil {
		return "", false
	}
	defer f.Close()

	buf := make([]byte, 4096)
	n, _ := f.Read(buf)
	dir := strings.TrimSpace(string(buf[:n]))
	return dir, dir != ""
}
