package identity

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

// --- Generators ---

// Trusted values and unrelated authors are drawn from disjoint alphabets.
func genTrusted() *rapid.Generator[string] {
	return rapid.StringMatching(`[abc]{1,6}`)
}

func genUnrelated() *rapid.Generator[string] {
	return rapid.StringMatching(`[xyz]{0,8}`)
}

// --- Property Tests ---

func TestRapidIncludes_TrustedEmailAlwaysIncluded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		emails := rapid.SliceOfN(genTrusted(), 1, 5).Draw(t, "emails")
		names := rapid.SliceOf(genTrusted()).Draw(t, "names")
		d := NewDescriptor(emails, names)

		email := rapid.SampledFrom(emails).Draw(t, "email")
		name := rapid.String().Draw(t, "name")

		included, err := d.Includes(Author{Name: name, Email: email})
		if err != nil || !included {
			t.Fatalf("Includes(%q, %q) = %v, %v; expected true, nil", name, email, included, err)
		}
	})
}

func TestRapidIncludes_DisjointAuthorExcluded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := NewDescriptor(
			rapid.SliceOf(genTrusted()).Draw(t, "emails"),
			rapid.SliceOf(genTrusted()).Draw(t, "names"),
		)
		a := Author{Name: genUnrelated().Draw(t, "name"), Email: genUnrelated().Draw(t, "email")}

		included, err := d.Includes(a)
		if err != nil || included {
			t.Fatalf("Includes(%v) = %v, %v; expected false, nil", a, included, err)
		}
	})
}

func TestRapidIncludes_NeverSilentOnOverlap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfN(genTrusted(), 1, 5).Draw(t, "names")
		d := NewDescriptor(nil, names)

		needle := rapid.SampledFrom(names).Draw(t, "needle")
		a := Author{
			Name:  genUnrelated().Draw(t, "prefix") + needle + "x",
			Email: genUnrelated().Draw(t, "email"),
		}

		included, err := d.Includes(a)
		var amb *AmbiguousIdentityError
		if included || !errors.As(err, &amb) {
			t.Fatalf("Includes(%v) = %v, %v; expected AmbiguousIdentityError", a, included, err)
		}
	})
}
