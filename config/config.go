package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/masmgr/commitharvest/internal/identity"
)

// Config is the root configuration structure.
type Config struct {
	Identity IdentityConfig `json:"identity" yaml:"identity"`
	Roots    []string       `json:"roots" yaml:"roots"`     // Scanned recursively
	Sources  []string       `json:"sources" yaml:"sources"` // Immediate children are repositories
	Scan     ScanConfig     `json:"scan" yaml:"scan"`
	Harvest  HarvestConfig  `json:"harvest" yaml:"harvest"`
}

// IdentityConfig lists the emails and names of the tracked person.
type IdentityConfig struct {
	Emails []string `json:"emails" yaml:"emails"`
	Names  []string `json:"names" yaml:"names"`
}

// ScanConfig holds repository discovery options.
type ScanConfig struct {
	FollowSymlinks bool     `json:"followSymlinks" yaml:"followSymlinks"` // Default: true
	Exclude        []string `json:"exclude" yaml:"exclude"`               // Glob patterns relative to each root
}

// HarvestConfig holds history extraction options.
type HarvestConfig struct {
	AllRefs         bool     `json:"allRefs" yaml:"allRefs"`                 // Default: true
	Workers         int      `json:"workers" yaml:"workers"`                 // Default: 2 * NumCPU
	RepoTimeout     Duration `json:"repoTimeout" yaml:"repoTimeout"`         // Default: 5m
	DefaultBranches []string `json:"defaultBranches" yaml:"defaultBranches"` // Default: master, main
}

// Duration is a time.Duration written as a Go duration string ("90s").
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid duration %s", string(data))
		}
		*d = Duration(n)
		return nil
	}
	return d.parse(s)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Identity: IdentityConfig{
			Emails: []string{},
			Names:  []string{},
		},
		Roots:   []string{},
		Sources: []string{},
		Scan: ScanConfig{
			FollowSymlinks: true,
			Exclude:        []string{},
		},
		Harvest: HarvestConfig{
			AllRefs:         true,
			Workers:         2 * runtime.NumCPU(),
			RepoTimeout:     Duration(5 * time.Minute),
			DefaultBranches: []string{"master", "main"},
		},
	}
}

// defaultNames are the file names searched when no path is given.
var defaultNames = []string{".commits.json", ".commits.yaml", ".commits.yml"}

// LoadConfig loads configuration from a file, merging with defaults.
// JSON and YAML are selected by file extension.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findDefault()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

func findDefault() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range defaultNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports configuration errors that would make a harvest meaningless.
func (c *Config) Validate() error {
	var errs []error
	if identity.NewDescriptor(c.Identity.Emails, c.Identity.Names).Empty() {
		errs = append(errs, errors.New("identity: at least one email or name is required"))
	}
	errs = append(errs, c.ValidateScan())
	if c.Harvest.Workers < 0 {
		errs = append(errs, fmt.Errorf("harvest.workers: must not be negative, got %d", c.Harvest.Workers))
	}
	if c.Harvest.RepoTimeout < 0 {
		errs = append(errs, fmt.Errorf("harvest.repoTimeout: must not be negative, got %s", c.Harvest.RepoTimeout))
	}
	return errors.Join(errs...)
}

// ValidateScan checks only what repository discovery needs.
func (c *Config) ValidateScan() error {
	var errs []error
	if len(c.Roots) == 0 && len(c.Sources) == 0 {
		errs = append(errs, errors.New("at least one root or source directory is required"))
	}
	for _, pattern := range c.Scan.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("scan.exclude: invalid pattern %q", pattern))
		}
	}
	return errors.Join(errs...)
}
