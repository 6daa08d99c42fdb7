package git

import (
	"fmt"
	"time"
)

// MetadataDirName is the conventional name of the metadata directory inside a working tree.
const MetadataDirName = ".git"

// ReferenceNotFoundError reports a reference that does not exist in a repository.
type ReferenceNotFoundError struct {
	Name string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("reference at %q does not exist", e.Name)
}

// Timestamp is an instant together with the UTC offset it was recorded in.
type Timestamp struct {
	Unix          int64
	OffsetSeconds int // signed, east of UTC
	Fixed         bool
}

// NewTimestamp captures t. Fixed is false when t's location is not a static
// offset, e.g. a zone database entry with daylight-saving transitions.
func NewTimestamp(t time.Time) Timestamp {
	_, offset := t.Zone()
	return Timestamp{
		Unix:          t.Unix(),
		OffsetSeconds: offset,
		Fixed:         isFixedZone(t.Location(), offset),
	}
}

// zoneSamples are instants spread over decades and both halves of the year.
var zoneSamples = []time.Time{
	time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2010, 7, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2030, 7, 1, 0, 0, 0, 0, time.UTC),
}

func isFixedZone(loc *time.Location, offset int) bool {
	if loc == time.UTC {
		return offset == 0
	}
	for _, p := range zoneSamples {
		if _, o := p.In(loc).Zone(); o != offset {
			return false
		}
	}
	return true
}

// RawCommit is a commit as read from the object store, before any filtering.
type RawCommit struct {
	ContentID   string
	AuthorName  string
	AuthorEmail string
	AuthorTime  Timestamp
	CommitTime  Timestamp
	Message     string
}
