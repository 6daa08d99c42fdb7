// Package naming derives human-facing project names from repository paths.
package naming

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// backupLayout matches archival exports that store every project as
// <provider>/repositories/<project>/repository.
const backupLayout = "*/repositories/*/repository"

// Canonical returns the display name for the repository rooted at root: the
// last path component, or <project> for archival backup layouts. It never
// returns an empty string.
func Canonical(root string) string {
	clean := filepath.Clean(root)
	parts := strings.Split(filepath.ToSlash(clean), "/")

	if n := len(parts); n >= 4 && parts[n-4] != "" {
		tail := strings.Join(parts[n-4:], "/")
		if ok, _ := doublestar.Match(backupLayout, tail); ok {
			return parts[n-2]
		}
	}

	name := filepath.Base(clean)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return clean
	}
	return name
}
