package harvest

import (
	"time"

	"github.com/masmgr/commitharvest/internal/naming"
)

// Commit is one harvested commit authored by the tracked person.
type Commit struct {
	CommitTime time.Time
	AuthorTime time.Time
	Message    string
	Repo       string // canonical repository name
	ContentID  string
	Ref        string // originating reference; empty when walked from HEAD
}

// DT returns the instant used to order commits on a timeline.
func (c Commit) DT() time.Time {
	return c.CommitTime
}

// Location is a resolved repository root with its display name.
type Location struct {
	Root string
	Name string
}

// NewLocation names root with naming.Canonical.
func NewLocation(root string) Location {
	return Location{Root: root, Name: naming.Canonical(root)}
}

// Locations maps roots to locations, preserving order.
func Locations(roots []string) []Location {
	locs := make([]Location, len(roots))
	for i, r := range roots {
		locs[i] = NewLocation(r)
	}
	return locs
}
