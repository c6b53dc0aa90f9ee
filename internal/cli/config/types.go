// Package config provides configuration management for the sqlfluff CLI.
//
// Settings are layered with koanf: built-in defaults, then a .sqlfluff.yaml
// project file, then SQLFLUFF_* environment variables, then command-line
// flags. The result is decoded into Config and converted into the lint
// package's runtime configuration with ToLintConfig.
package config

import (
	"github.com/CommonCrisis/sqlfluff/pkg/reflow"
)

// RuleOptions holds free-form options for a single rule.
type RuleOptions = map[string]any

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	MaxLoops     int           `koanf:"max_loops"`
	Processes    int           `koanf:"processes"`
	Lint         LintConfig    `koanf:"lint"`
	Layout       reflow.Config `koanf:"layout"`
}

// LintConfig selects and tunes rules.
type LintConfig struct {
	Disabled []string               `koanf:"disabled"` // rule IDs or aliases to skip
	Only     []string               `koanf:"only"`     // when set, run only these rules
	Severity map[string]string      `koanf:"severity"` // rule ID -> severity name
	Rules    map[string]RuleOptions `koanf:"rules"`    // rule ID -> options
}

// Default configuration values.
const (
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultMaxLoops  = 10
	DefaultProcesses = 1
)

// Config file names, in lookup order.
var configFileNames = []string{".sqlfluff.yaml", ".sqlfluff.yml"}

// Default returns the configuration used when nothing has been loaded.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		MaxLoops:     DefaultMaxLoops,
		Processes:    DefaultProcesses,
		Layout:       reflow.DefaultConfig(),
	}
}
