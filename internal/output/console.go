package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleCommitWriter writes harvest reports to the console.
type ConsoleCommitWriter struct{}

// Write outputs the harvest report as a table.
func (w *ConsoleCommitWriter) Write(report *HarvestReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintln(out, "Commit Harvest Results")
	fmt.Fprintf(out, "Repositories: %d\n", report.Repositories)
	fmt.Fprintf(out, "Commits: %d\n\n", len(report.Commits))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCommitted\tRepo\tSHA\tMessage")

	repoColor := color.New(color.FgCyan).SprintFunc()
	for i, c := range report.Commits {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			c.CommitTime.Format(reportDateTimeLayout),
			repoColor(c.Repo),
			shortSHA(c.ContentID),
			truncateMessage(subject(c.Message), 60),
		)
	}

	return tw.Flush()
}

// ConsoleRepoWriter writes repository listings to the console.
type ConsoleRepoWriter struct{}

// Write outputs one repository per row.
func (w *ConsoleRepoWriter) Write(report *RepoReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintln(out, "Discovered Repositories")
	fmt.Fprintf(out, "Total: %d\n\n", len(report.Repositories))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tPath")
	for _, loc := range report.Repositories {
		fmt.Fprintf(tw, "%s\t%s\n", loc.Name, loc.Root)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Skipped) > 0 {
		warn := color.New(color.FgYellow)
		warn.Fprintf(out, "\nSkipped %d path(s):\n", len(report.Skipped))
		for _, s := range report.Skipped {
			fmt.Fprintf(out, "  %s\n", s)
		}
	}
	return nil
}
