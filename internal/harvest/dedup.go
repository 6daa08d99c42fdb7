package harvest

import (
	"slices"
)

// Deduplicate keeps exactly one commit per ContentID. Candidates sharing an
// id are content-identical, so the survivor is chosen by provenance: the
// lexicographically smallest Repo, then the smallest Ref; full provenance
// ties keep the first one encountered. Groups stay in first-seen order.
func Deduplicate(commits []Commit) []Commit {
	index := make(map[string]int, len(commits))
	out := make([]Commit, 0, len(commits))

	for _, c := range commits {
		i, ok := index[c.ContentID]
		if !ok {
			index[c.ContentID] = len(out)
			out = append(out, c)
			continue
		}
		if preferred(c, out[i]) {
			out[i] = c
		}
	}
	return out
}

// preferred reports whether a should replace b as a group's representative.
func preferred(a, b Commit) bool {
	if a.Repo != b.Repo {
		return a.Repo < b.Repo
	}
	return a.Ref < b.Ref
}

// Merge returns commits sorted by CommitTime ascending. The sort is stable,
// so commits with equal times keep their input order.
func Merge(commits []Commit) []Commit {
	out := slices.Clone(commits)
	slices.SortStableFunc(out, func(a, b Commit) int {
		return a.CommitTime.Compare(b.CommitTime)
	})
	return out
}
