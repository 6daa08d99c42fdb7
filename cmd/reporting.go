package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitharvest/internal/output"
)

func writeHarvestReport(c *cli.Context, report *output.HarvestReport) error {
	opts := OutputOptions(c)
	writer := output.NewCommitReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeRepoReport(c *cli.Context, report *output.RepoReport) error {
	opts := OutputOptions(c)
	writer := output.NewRepoReportWriter(opts.Format)
	return writer.Write(report, opts)
}
