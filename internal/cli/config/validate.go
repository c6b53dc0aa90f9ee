package config

import (
	"fmt"
	"runtime"
	"slices"
	"sort"
	"strings"

	"github.com/CommonCrisis/sqlfluff/pkg/lint"
)

// outputFormats lists the accepted values of the output key.
var outputFormats = []string{"auto", "text", "markdown", "json", "table"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OutputFormat != "" && !slices.Contains(outputFormats, strings.ToLower(c.OutputFormat)) {
		return fmt.Errorf("invalid output %q: expected one of %s", c.OutputFormat, strings.Join(outputFormats, ", "))
	}
	if c.MaxLoops < 1 {
		return fmt.Errorf("invalid max_loops %d: must be at least 1", c.MaxLoops)
	}

	ids := make([]string, 0, len(c.Lint.Severity))
	for id := range c.Lint.Severity {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := lint.ParseSeverity(c.Lint.Severity[id]); !ok {
			return fmt.Errorf("invalid severity %q for rule %s: expected one of error, warning, info, hint", c.Lint.Severity[id], id)
		}
	}

	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

// Workers returns the number of files to lint in parallel.
// Zero means one per CPU; a negative value leaves that many CPUs free.
func (c *Config) Workers() int {
	n := c.Processes
	if n <= 0 {
		n += runtime.NumCPU()
	}
	return max(n, 1)
}

// ToLintConfig builds the linter configuration.
func (c *Config) ToLintConfig() *lint.Config {
	lintCfg := lint.NewConfig()
	lintCfg.Layout = lintCfg.Layout.Merge(c.Layout)

	for _, id := range c.Lint.Disabled {
		if id = strings.TrimSpace(id); id != "" {
			lintCfg.Disable(id)
		}
	}

	var only []string
	for _, id := range c.Lint.Only {
		if id = strings.TrimSpace(id); id != "" {
			only = append(only, id)
		}
	}
	lintCfg.Allow(only...)

	for id, sev := range c.Lint.Severity {
		if s, ok := lint.ParseSeverity(sev); ok {
			lintCfg.SetSeverity(id, s)
		}
	}
	for id, opts := range c.Lint.Rules {
		lintCfg.SetRuleOptions(id, opts)
	}
	return lintCfg
}
