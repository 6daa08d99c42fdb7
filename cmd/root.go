package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitharvest/config"
	"github.com/masmgr/commitharvest/internal/harvest"
	"github.com/masmgr/commitharvest/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "commitharvest",
		Usage:   "Collect your own commits from every Git repository on disk",
		Version: "1.0.0",
		Commands: []*cli.Command{
			HarvestCmd(),
			ReposCmd(),
			ConfigCmd(),
		},
		// Flags are repeated on every command so they may appear on either
		// side of the command name; see flagContext.
		Flags: harvestFlags(),
		Action: defaultAction,
	}
}

// Discovery flags shared across commands
func scanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file (.json, .yaml)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
		&cli.StringSliceFlag{
			Name:  "root",
			Usage: "Directory to scan recursively for repositories (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "source",
			Usage: "Directory whose immediate children are repositories (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns of directories to skip while scanning (can be specified multiple times)",
		},
		&cli.BoolFlag{
			Name:  "no-follow",
			Usage: "Do not follow symbolic links while scanning",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, ci)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// Identity and extraction flags
func harvestFlags() []cli.Flag {
	return append(scanFlags(),
		&cli.StringSliceFlag{
			Name:    "email",
			Aliases: []string{"e"},
			Usage:   "Trusted author email (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "Trusted author name (can be specified multiple times)",
		},
		&cli.BoolFlag{
			Name:  "head-only",
			Usage: "Walk only HEAD instead of every branch, tag and remote-tracking reference",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"j"},
			Usage:   "Number of repositories read concurrently",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Maximum time spent reading one repository (0 disables)",
		},
	)
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// flagContext returns the nearest context in c's lineage where name was set
// explicitly, or c itself when no command level set it.
func flagContext(c *cli.Context, name string) *cli.Context {
	for _, lc := range c.Lineage() {
		if lc.IsSet(name) {
			return lc
		}
	}
	return c
}

func stringFlag(c *cli.Context, name string) string {
	return flagContext(c, name).String(name)
}

func stringSliceFlag(c *cli.Context, name string) []string {
	return flagContext(c, name).StringSlice(name)
}

func boolFlag(c *cli.Context, name string) bool {
	return flagContext(c, name).Bool(name)
}

func isSet(c *cli.Context, name string) bool {
	for _, lc := range c.Lineage() {
		if lc.IsSet(name) {
			return true
		}
	}
	return false
}

// loadConfig loads configuration from file or defaults and applies CLI overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(stringFlag(c, "config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyOverrides(c, cfg)
	return cfg, nil
}

func applyOverrides(c *cli.Context, cfg *config.Config) {
	if emails := stringSliceFlag(c, "email"); len(emails) > 0 {
		cfg.Identity.Emails = emails
	}
	if names := stringSliceFlag(c, "name"); len(names) > 0 {
		cfg.Identity.Names = names
	}
	if roots := stringSliceFlag(c, "root"); len(roots) > 0 {
		cfg.Roots = roots
	}
	if sources := stringSliceFlag(c, "source"); len(sources) > 0 {
		cfg.Sources = sources
	}
	if excludes := stringSliceFlag(c, "exclude"); len(excludes) > 0 {
		cfg.Scan.Exclude = excludes
	}
	if boolFlag(c, "no-follow") {
		cfg.Scan.FollowSymlinks = false
	}
	if boolFlag(c, "head-only") {
		cfg.Harvest.AllRefs = false
	}
	if isSet(c, "workers") {
		cfg.Harvest.Workers = flagContext(c, "workers").Int("workers")
	}
	if isSet(c, "timeout") {
		cfg.Harvest.RepoTimeout = config.Duration(flagContext(c, "timeout").Duration("timeout"))
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func harvestOptions(cfg *config.Config, logger *slog.Logger) harvest.Options {
	return harvest.Options{
		Identity:        identityOf(cfg),
		AllRefs:         cfg.Harvest.AllRefs,
		Workers:         cfg.Harvest.Workers,
		RepoTimeout:     time.Duration(cfg.Harvest.RepoTimeout),
		DefaultBranches: cfg.Harvest.DefaultBranches,
		Logger:          logger,
	}
}

// defaultAction runs a harvest when no subcommand is given.
func defaultAction(c *cli.Context) error {
	return harvestAction(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		red := color.New(color.FgRed)
		red.Fprintf(os.Stderr, "Error: %v\n", err)

		var ambiguous *harvest.AmbiguousIdentityError
		if errors.As(err, &ambiguous) {
			fmt.Fprintln(os.Stderr, "Adjust identity.emails / identity.names so this author either matches exactly or not at all.")
		}
		os.Exit(1)
	}
}
