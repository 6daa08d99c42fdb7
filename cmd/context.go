package cmd

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitharvest/config"
	"github.com/masmgr/commitharvest/internal/harvest"
	"github.com/masmgr/commitharvest/internal/identity"
	"github.com/masmgr/commitharvest/internal/output"
	"github.com/masmgr/commitharvest/internal/scan"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config    *config.Config
	Logger    *slog.Logger
	Scan      scan.Result
	Locations []harvest.Location
}

// NewCommandContext creates a context from CLI flags.
// It performs configuration loading, validation and repository discovery.
// requireIdentity is false for commands that never read history.
func NewCommandContext(c *cli.Context, requireIdentity bool) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	validate := cfg.ValidateScan
	if requireIdentity {
		validate = cfg.Validate
	}
	if err := validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(boolFlag(c, "verbose"))

	scanner := scan.NewScanner(scan.Options{
		FollowSymlinks: cfg.Scan.FollowSymlinks,
		Exclude:        cfg.Scan.Exclude,
		Logger:         logger,
	})
	result := scan.Merge(scanner.Scan(cfg.Roots), scanner.ScanSources(cfg.Sources))
	logger.Debug("repository discovery finished",
		"repositories", len(result.Roots),
		"skipped", len(result.Skipped),
	)

	return &CommandContext{
		Config:    cfg,
		Logger:    logger,
		Scan:      result,
		Locations: harvest.Locations(result.Roots),
	}, nil
}

func identityOf(cfg *config.Config) identity.Descriptor {
	return identity.NewDescriptor(cfg.Identity.Emails, cfg.Identity.Names)
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(stringFlag(c, "format")),
		OutputPath: stringFlag(c, "output"),
	}
}
