package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/masmgr/commitharvest/config"
	"github.com/masmgr/commitharvest/internal/gittest"
	"github.com/masmgr/commitharvest/internal/harvest"
	"github.com/masmgr/commitharvest/internal/output"
)

// setupWorkspace creates root/{alpha,beta} with commits by alice and bob.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := t.TempDir()
	zone := time.FixedZone("", 2*60*60)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, zone)

	alpha := gittest.InitRepo(t, filepath.Join(root, "alpha"), false)
	gittest.Commit(t, alpha, "a.txt", "1", "first alpha", gittest.Signature("Alice", "alice@example.com", base))
	gittest.Commit(t, alpha, "a.txt", "2", "bob in alpha", gittest.Signature("Bob", "bob@example.com", base.Add(time.Hour)))

	beta := gittest.InitRepo(t, filepath.Join(root, "beta"), false)
	gittest.Commit(t, beta, "b.txt", "1", "first beta", gittest.Signature("Alice", "alice@example.com", base.Add(30*time.Minute)))

	return root
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, data)
	}
}

func TestHarvestCommand(t *testing.T) {
	root := setupWorkspace(t)
	out := filepath.Join(t.TempDir(), "commits.json")

	err := App().Run([]string{"commitharvest", "harvest",
		"--root", root,
		"--email", "alice@example.com",
		"--format", "json",
		"--output", out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var report output.JSONHarvestReport
	readJSON(t, out, &report)

	if report.Repositories != 2 {
		t.Errorf("Repositories = %d, want 2", report.Repositories)
	}
	if report.TotalCommits != 2 || len(report.Commits) != 2 {
		t.Fatalf("TotalCommits = %d, want 2: %+v", report.TotalCommits, report.Commits)
	}

	first, second := report.Commits[0], report.Commits[1]
	if first.Repo != "alpha" || first.Message != "first alpha" {
		t.Errorf("first commit = %+v", first)
	}
	if second.Repo != "beta" || second.Message != "first beta" {
		t.Errorf("second commit = %+v", second)
	}
	if first.CommitTime != "2024-03-01T09:00:00+02:00" {
		t.Errorf("CommitTime = %q, want offset preserved", first.CommitTime)
	}
}

func TestDefaultActionWithConfigFile(t *testing.T) {
	root := setupWorkspace(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "commits.yaml")
	out := filepath.Join(dir, "commits.json")

	yamlConfig := "identity:\n  names: [Bob]\nroots: [" + root + "]\nharvest:\n  repoTimeout: 1m\n"
	if err := os.WriteFile(cfgPath, []byte(yamlConfig), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := App().Run([]string{"commitharvest", "--config", cfgPath, "--format", "json", "--output", out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var report output.JSONHarvestReport
	readJSON(t, out, &report)

	if len(report.Commits) != 1 || report.Commits[0].Message != "bob in alpha" {
		t.Fatalf("Commits = %+v, want only bob's commit", report.Commits)
	}
}

func TestHarvestCommandAmbiguousIdentity(t *testing.T) {
	root := setupWorkspace(t)

	err := App().Run([]string{"commitharvest", "harvest",
		"--root", root,
		"--email", "example.com",
		"--format", "json",
		"--output", filepath.Join(t.TempDir(), "out.json"),
	})

	var ambiguous *harvest.AmbiguousIdentityError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousIdentityError, got %v", err)
	}
}

func TestHarvestCommandRequiresIdentity(t *testing.T) {
	root := setupWorkspace(t)

	err := App().Run([]string{"commitharvest", "harvest", "--root", root})
	if err == nil {
		t.Fatal("expected validation error without identity")
	}
}

func TestReposCommand(t *testing.T) {
	root := setupWorkspace(t)
	out := filepath.Join(t.TempDir(), "repos.json")

	err := App().Run([]string{"commitharvest", "repos",
		"--root", root,
		"--format", "json",
		"--output", out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var report output.JSONRepoReport
	readJSON(t, out, &report)

	if len(report.Repositories) != 2 {
		t.Fatalf("Repositories = %+v, want 2", report.Repositories)
	}
	if report.Repositories[0].Name != "alpha" || report.Repositories[1].Name != "beta" {
		t.Errorf("Repositories = %+v", report.Repositories)
	}
}

func TestConfigCommandSave(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	out := filepath.Join(t.TempDir(), "saved.yaml")

	err := App().Run([]string{"commitharvest", "config",
		"--email", "alice@example.com",
		"--workers", "4",
		"--output", out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	err = App().Run([]string{"commitharvest", "--config", out, "config",
		"--output", filepath.Join(t.TempDir(), "copy.json"),
	})
	if err != nil {
		t.Fatalf("Run with saved config: %v", err)
	}
}

func TestFlagsOnEitherSideOfCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")

	if err := os.WriteFile(in, []byte(`{"roots": ["/src"]}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := App().Run([]string{"commitharvest",
		"--head-only", "--workers", "3",
		"config",
		"--config", in, "--verbose", "--timeout", "1m",
		"--output", out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	cfg, err := config.LoadConfig(out)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Harvest.AllRefs {
		t.Error("--head-only before the command was ignored")
	}
	if cfg.Harvest.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Harvest.Workers)
	}
	if got := time.Duration(cfg.Harvest.RepoTimeout); got != time.Minute {
		t.Errorf("RepoTimeout = %s, want 1m", got)
	}
	if len(cfg.Roots) != 1 || cfg.Roots[0] != "/src" {
		t.Errorf("Roots = %v, want [/src] from --config after the command", cfg.Roots)
	}
}
