package output

import (
	"encoding/json"
	"io"
	"time"
)

// CICommitWriter writes harvest reports as NDJSON (one JSON object per line) for pipelines.
type CICommitWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type         string `json:"type"`
	Repositories int    `json:"repositories"`
	TotalCommits int    `json:"totalCommits"`
	First        string `json:"first,omitempty"`
	Last         string `json:"last,omitempty"`
}

// CICommitEntry represents a single commit in CI output.
type CICommitEntry struct {
	Type string `json:"type"`
	JSONCommit
}

// Write outputs the summary followed by one line per commit, oldest first.
func (w *CICommitWriter) Write(report *HarvestReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CISummary{
		Type:         "summary",
		Repositories: report.Repositories,
		TotalCommits: len(report.Commits),
	}
	if n := len(report.Commits); n > 0 {
		summary.First = report.Commits[0].CommitTime.Format(time.RFC3339)
		summary.Last = report.Commits[n-1].CommitTime.Format(time.RFC3339)
	}

	return writeNDJSON(out, summary, len(report.Commits), func(i int) interface{} {
		return CICommitEntry{Type: "commit", JSONCommit: newJSONCommit(report.Commits[i])}
	})
}

// CIRepoWriter writes repository listings as NDJSON.
type CIRepoWriter struct{}

// CIRepoEntry represents a single repository in CI output.
type CIRepoEntry struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Write outputs a summary line followed by one line per repository.
func (w *CIRepoWriter) Write(report *RepoReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CISummary{Type: "summary", Repositories: len(report.Repositories)}
	return writeNDJSON(out, summary, len(report.Repositories), func(i int) interface{} {
		loc := report.Repositories[i]
		return CIRepoEntry{Type: "repository", Name: loc.Name, Path: loc.Root}
	})
}

func writeNDJSON(out io.Writer, summary CISummary, n int, entry func(int) interface{}) error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(summary); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := enc.Encode(entry(i)); err != nil {
			return err
		}
	}
	return nil
}
