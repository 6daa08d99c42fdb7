package cmd

import (
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitharvest/config"
	"github.com/masmgr/commitharvest/internal/output"
)

func TestGetOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  output.OutputFormat
	}{
		{input: "", want: output.FormatConsole},
		{input: "console", want: output.FormatConsole},
		{input: "json", want: output.FormatJSON},
		{input: "csv", want: output.FormatCSV},
		{input: "ci", want: output.FormatCI},
		{input: "ndjson", want: output.FormatCI},
		{input: "unknown", want: output.FormatConsole},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := getOutputFormat(tt.input); got != tt.want {
				t.Errorf("getOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// runOverrides parses args with the harvest flags and returns the config
// after CLI overrides are applied to the defaults.
func runOverrides(t *testing.T, args ...string) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	app := &cli.App{
		Name:  "test",
		Flags: harvestFlags(),
		Action: func(c *cli.Context) error {
			applyOverrides(c, cfg)
			return nil
		},
	}
	if err := app.Run(append([]string{"test"}, args...)); err != nil {
		t.Fatalf("app.Run: %v", err)
	}
	return cfg
}

func TestApplyOverrides(t *testing.T) {
	t.Run("NoFlagsKeepDefaults", func(t *testing.T) {
		cfg := runOverrides(t)
		def := config.DefaultConfig()

		if !cfg.Scan.FollowSymlinks {
			t.Error("FollowSymlinks should stay enabled")
		}
		if !cfg.Harvest.AllRefs {
			t.Error("AllRefs should stay enabled")
		}
		if cfg.Harvest.Workers != def.Harvest.Workers {
			t.Errorf("Workers = %d, want %d", cfg.Harvest.Workers, def.Harvest.Workers)
		}
		if cfg.Harvest.RepoTimeout != def.Harvest.RepoTimeout {
			t.Errorf("RepoTimeout = %s, want %s", cfg.Harvest.RepoTimeout, def.Harvest.RepoTimeout)
		}
	})

	t.Run("AllFlags", func(t *testing.T) {
		cfg := runOverrides(t,
			"--email", "a@example.com", "--email", "b@example.com",
			"--name", "Alice",
			"--root", "/src",
			"--source", "/backups",
			"--exclude", "**/vendor/**",
			"--no-follow",
			"--head-only",
			"--workers", "3",
			"--timeout", "90s",
		)

		if len(cfg.Identity.Emails) != 2 || cfg.Identity.Emails[1] != "b@example.com" {
			t.Errorf("Emails = %v", cfg.Identity.Emails)
		}
		if len(cfg.Identity.Names) != 1 || cfg.Identity.Names[0] != "Alice" {
			t.Errorf("Names = %v", cfg.Identity.Names)
		}
		if len(cfg.Roots) != 1 || cfg.Roots[0] != "/src" {
			t.Errorf("Roots = %v", cfg.Roots)
		}
		if len(cfg.Sources) != 1 || cfg.Sources[0] != "/backups" {
			t.Errorf("Sources = %v", cfg.Sources)
		}
		if len(cfg.Scan.Exclude) != 1 || cfg.Scan.Exclude[0] != "**/vendor/**" {
			t.Errorf("Exclude = %v", cfg.Scan.Exclude)
		}
		if cfg.Scan.FollowSymlinks {
			t.Error("FollowSymlinks should be disabled by --no-follow")
		}
		if cfg.Harvest.AllRefs {
			t.Error("AllRefs should be disabled by --head-only")
		}
		if cfg.Harvest.Workers != 3 {
			t.Errorf("Workers = %d, want 3", cfg.Harvest.Workers)
		}
		if got := time.Duration(cfg.Harvest.RepoTimeout); got != 90*time.Second {
			t.Errorf("RepoTimeout = %s, want 90s", got)
		}
	})

	t.Run("ExplicitZeroTimeout", func(t *testing.T) {
		cfg := runOverrides(t, "--timeout", "0s")
		if cfg.Harvest.RepoTimeout != 0 {
			t.Errorf("RepoTimeout = %s, want 0", cfg.Harvest.RepoTimeout)
		}
	})
}
