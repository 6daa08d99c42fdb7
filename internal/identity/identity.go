// Package identity decides whether a commit author is the tracked person.
package identity

import (
	"fmt"
	"sort"
	"strings"
)

// Author is the raw author identity recorded on a commit.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Descriptor holds the trusted emails and display names of the tracked person.
// The zero value trusts nobody.
type Descriptor struct {
	emails map[string]struct{}
	names  map[string]struct{}
	// needles is every trusted value, sorted, for substring collision checks.
	needles []string
}

// NewDescriptor builds a Descriptor. Values are trimmed; blank values are
// dropped since they would collide with every author.
func NewDescriptor(emails, names []string) Descriptor {
	d := Descriptor{
		emails: make(map[string]struct{}, len(emails)),
		names:  make(map[string]struct{}, len(names)),
	}
	seen := make(map[string]struct{}, len(emails)+len(names))
	add := func(set map[string]struct{}, v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		set[v] = struct{}{}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			d.needles = append(d.needles, v)
		}
	}
	for _, e := range emails {
		add(d.emails, e)
	}
	for _, n := range names {
		add(d.names, n)
	}
	sort.Strings(d.needles)
	return d
}

// Empty reports whether the descriptor trusts no email and no name.
func (d Descriptor) Empty() bool {
	return len(d.needles) == 0
}

// Emails returns the trusted emails, sorted.
func (d Descriptor) Emails() []string {
	return sortedKeys(d.emails)
}

// Names returns the trusted names, sorted.
func (d Descriptor) Names() []string {
	return sortedKeys(d.names)
}

// AmbiguousIdentityError reports an author that partially overlaps a trusted
// value without matching any exactly. It signals a configuration defect.
type AmbiguousIdentityError struct {
	Author Author
	Match  string // the trusted value found inside the author fields
}

func (e *AmbiguousIdentityError) Error() string {
	return fmt.Sprintf("ambiguous author identity %s: partially matches trusted value %q", e.Author, e.Match)
}

// Includes reports whether a was authored by the tracked person. An exact
// email match wins, then an exact name match. Otherwise any trusted value
// occurring inside "<email> <name>" is an *AmbiguousIdentityError.
func (d Descriptor) Includes(a Author) (bool, error) {
	if _, ok := d.emails[a.Email]; ok {
		return true, nil
	}
	if _, ok := d.names[a.Name]; ok {
		return true, nil
	}

	haystack := a.Email + " " + a.Name
	for _, needle := range d.needles {
		if strings.Contains(haystack, needle) {
			return false, &AmbiguousIdentityError{Author: a, Match: needle}
		}
	}
	return false, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
