package output

import (
	"time"

	"github.com/masmgr/commitharvest/internal/harvest"
)

// Compile-time interface conformance checks.
// These ensure that all writer types correctly implement their respective interfaces.
var (
	// CommitReportWriter implementations
	_ CommitReportWriter = (*ConsoleCommitWriter)(nil)
	_ CommitReportWriter = (*JSONCommitWriter)(nil)
	_ CommitReportWriter = (*CSVCommitWriter)(nil)
	_ CommitReportWriter = (*CICommitWriter)(nil)

	// RepoReportWriter implementations
	_ RepoReportWriter = (*ConsoleRepoWriter)(nil)
	_ RepoReportWriter = (*JSONRepoWriter)(nil)
	_ RepoReportWriter = (*CSVRepoWriter)(nil)
	_ RepoReportWriter = (*CIRepoWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatCI      OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
}

// HarvestReport holds the ordered commit stream of one harvest.
type HarvestReport struct {
	Roots        []string
	Sources      []string
	Repositories int
	GeneratedAt  time.Time
	Commits      []harvest.Commit
}

// RepoReport holds the repositories found by a scan.
type RepoReport struct {
	Roots        []string
	Sources      []string
	GeneratedAt  time.Time
	Repositories []harvest.Location
	Skipped      []string
}

// CommitReportWriter writes harvest reports.
type CommitReportWriter interface {
	Write(report *HarvestReport, options OutputOptions) error
}

// RepoReportWriter writes repository listings.
type RepoReportWriter interface {
	Write(report *RepoReport, options OutputOptions) error
}

// NewCommitReportWriter creates a commit report writer for the specified format.
func NewCommitReportWriter(format OutputFormat) CommitReportWriter {
	switch format {
	case FormatJSON:
		return &JSONCommitWriter{}
	case FormatCSV:
		return &CSVCommitWriter{}
	case FormatCI:
		return &CICommitWriter{}
	default:
		return &ConsoleCommitWriter{}
	}
}

// NewRepoReportWriter creates a repository report writer for the specified format.
func NewRepoReportWriter(format OutputFormat) RepoReportWriter {
	switch format {
	case FormatJSON:
		return &JSONRepoWriter{}
	case FormatCSV:
		return &CSVRepoWriter{}
	case FormatCI:
		return &CIRepoWriter{}
	default:
		return &ConsoleRepoWriter{}
	}
}
