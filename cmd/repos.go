package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitharvest/internal/output"
)

// ReposCmd returns the repos command.
func ReposCmd() *cli.Command {
	return &cli.Command{
		Name:    "repos",
		Aliases: []string{"r"},
		Usage:   "List the repositories that a harvest would read",
		Flags:   scanFlags(),
		Action:  reposAction,
	}
}

func reposAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c, false)
	if err != nil {
		return err
	}

	skipped := make([]string, len(ctx.Scan.Skipped))
	for i, s := range ctx.Scan.Skipped {
		skipped[i] = s.Error()
	}

	report := &output.RepoReport{
		Roots:        ctx.Config.Roots,
		Sources:      ctx.Config.Sources,
		GeneratedAt:  time.Now(),
		Repositories: ctx.Locations,
		Skipped:      skipped,
	}
	return writeRepoReport(c, report)
}
