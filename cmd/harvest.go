package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitharvest/internal/harvest"
	"github.com/masmgr/commitharvest/internal/output"
)

// HarvestCmd returns the harvest command.
func HarvestCmd() *cli.Command {
	return &cli.Command{
		Name:   "harvest",
		Usage:  "List your commits from all discovered repositories, oldest first",
		Flags:  harvestFlags(),
		Action: harvestAction,
	}
}

func harvestAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c, true)
	if err != nil {
		return err
	}

	h := harvest.New(harvestOptions(ctx.Config, ctx.Logger))
	commits, err := h.Harvest(c.Context, ctx.Locations)
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	report := &output.HarvestReport{
		Roots:        ctx.Config.Roots,
		Sources:      ctx.Config.Sources,
		Repositories: len(ctx.Locations),
		GeneratedAt:  time.Now(),
		Commits:      commits,
	}
	return writeHarvestReport(c, report)
}
