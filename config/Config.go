package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultConfigFile    = ".perfdetector.toml"
	DefaultScanRoot      = "src"
	DefaultReportFile    = "OPTIMIZATION_REPORT.md"
	DefaultBranch        = "auto/performance-optimizations"
	DefaultCommitMessage = "perf: Auto-detected optimization opportunities"
	DefaultBuildCommand  = "cargo"
	DefaultBuildSlowSecs = 30
	DefaultBuildTimeout  = 120
)

var DefaultBuildArgs = []string{"build", "--features", "bevy/dynamic_linking"}

type Config struct {
	ScanRoot      string   `toml:"scan_root"`
	Extensions    []string `toml:"extensions"`
	Exclude       []string `toml:"exclude"`
	ReportFile    string   `toml:"report_file"`
	Branch        string   `toml:"branch"`
	CommitMessage string   `toml:"commit_message"`
	SkipVendored  bool     `toml:"skip_vendored"`
	Build         Build    `toml:"build"`
}

type Build struct {
	Command          string   `toml:"command"`
	Args             []string `toml:"args"`
	ThresholdSeconds int      `toml:"threshold_seconds"`
	TimeoutSeconds   int      `toml:"timeout_seconds"`
}

func Default() Config {
	return Config{
		ScanRoot:      DefaultScanRoot,
		Extensions:    []string{"rs"},
		ReportFile:    DefaultReportFile,
		Branch:        DefaultBranch,
		CommitMessage: DefaultCommitMessage,
		Build: Build{
			Command:          DefaultBuildCommand,
			Args:             append([]string(nil), DefaultBuildArgs...),
			ThresholdSeconds: DefaultBuildSlowSecs,
			TimeoutSeconds:   DefaultBuildTimeout,
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error and yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if _, err := toml.Decode(string(content), &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults restores any value the file explicitly blanked out.
func (c *Config) applyDefaults() {
	defaults := Default()
	if c.ScanRoot == "" {
		c.ScanRoot = defaults.ScanRoot
	}
	if len(c.Extensions) == 0 {
		c.Extensions = defaults.Extensions
	}
	if c.ReportFile == "" {
		c.ReportFile = defaults.ReportFile
	}
	if c.Branch == "" {
		c.Branch = defaults.Branch
	}
	if c.CommitMessage == "" {
		c.CommitMessage = defaults.CommitMessage
	}
	if c.Build.Command == "" {
		c.Build.Command = defaults.Build.Command
		c.Build.Args = defaults.Build.Args
	}
	if c.Build.ThresholdSeconds <= 0 {
		c.Build.ThresholdSeconds = defaults.Build.ThresholdSeconds
	}
	if c.Build.TimeoutSeconds <= 0 {
		c.Build.TimeoutSeconds = defaults.Build.TimeoutSeconds
	}
}

func (b Build) Threshold() time.Duration {
	return time.Duration(b.ThresholdSeconds) * time.Second
}

func (b Build) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}
