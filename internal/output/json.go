package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/masmgr/commitharvest/internal/harvest"
)

// JSONCommitWriter writes harvest reports as JSON.
type JSONCommitWriter struct{}

// JSONHarvestReport is the JSON output structure for a harvest.
type JSONHarvestReport struct {
	Roots        []string     `json:"roots"`
	Sources      []string     `json:"sources"`
	GeneratedAt  string       `json:"generatedAt"`
	Repositories int          `json:"repositories"`
	TotalCommits int          `json:"totalCommits"`
	Commits      []JSONCommit `json:"commits"`
}

// JSONCommit is the JSON output structure for a single commit.
type JSONCommit struct {
	SHA        string `json:"sha"`
	Repo       string `json:"repo"`
	Ref        string `json:"ref,omitempty"`
	CommitTime string `json:"commitTime"`
	AuthorTime string `json:"authorTime"`
	Message    string `json:"message"`
}

func newJSONCommit(c harvest.Commit) JSONCommit {
	return JSONCommit{
		SHA:        c.ContentID,
		Repo:       c.Repo,
		Ref:        c.Ref,
		CommitTime: c.CommitTime.Format(time.RFC3339),
		AuthorTime: c.AuthorTime.Format(time.RFC3339),
		Message:    c.Message,
	}
}

// Write outputs the harvest report as JSON.
func (w *JSONCommitWriter) Write(report *HarvestReport, options OutputOptions) error {
	commits := make([]JSONCommit, len(report.Commits))
	for i, c := range report.Commits {
		commits[i] = newJSONCommit(c)
	}

	return writeJSON(JSONHarvestReport{
		Roots:        nonNil(report.Roots),
		Sources:      nonNil(report.Sources),
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		Repositories: report.Repositories,
		TotalCommits: len(commits),
		Commits:      commits,
	}, options.OutputPath)
}

// JSONRepoWriter writes repository listings as JSON.
type JSONRepoWriter struct{}

// JSONRepoReport is the JSON output structure for a repository listing.
type JSONRepoReport struct {
	Roots        []string   `json:"roots"`
	Sources      []string   `json:"sources"`
	GeneratedAt  string     `json:"generatedAt"`
	Repositories []JSONRepo `json:"repositories"`
	Skipped      []string   `json:"skipped,omitempty"`
}

// JSONRepo is the JSON output structure for a single repository.
type JSONRepo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Write outputs the repository listing as JSON.
func (w *JSONRepoWriter) Write(report *RepoReport, options OutputOptions) error {
	repos := make([]JSONRepo, len(report.Repositories))
	for i, loc := range report.Repositories {
		repos[i] = JSONRepo{Name: loc.Name, Path: loc.Root}
	}

	return writeJSON(JSONRepoReport{
		Roots:        nonNil(report.Roots),
		Sources:      nonNil(report.Sources),
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		Repositories: repos,
		Skipped:      report.Skipped,
	}, options.OutputPath)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
