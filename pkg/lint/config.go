package lint

import (
	"strings"

	"github.com/CommonCrisis/sqlfluff/pkg/reflow"
)

// Config controls which rules are enabled, their severity and the layout
// the reflow subsystem enforces.
type Config struct {
	// DisabledRules contains rule IDs or aliases to skip
	DisabledRules map[string]bool

	// OnlyRules restricts linting to these rule IDs or aliases when non-empty
	OnlyRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]Severity

	// RuleOptions holds rule-specific options keyed by rule ID
	RuleOptions map[string]map[string]any

	// Layout is handed to rules through the RuleContext
	Layout reflow.Config
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		OnlyRules:         make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
		RuleOptions:       make(map[string]map[string]any),
		Layout:            reflow.DefaultConfig(),
	}
}

func key(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[key(ruleID)]
}

// IsEnabled reports whether a rule runs, checking its ID and aliases
// against the disabled and allowed sets.
func (c *Config) IsEnabled(rule Rule) bool {
	if c == nil {
		return true
	}
	ids := append([]string{rule.ID()}, rule.Aliases()...)
	for _, id := range ids {
		if c.IsDisabled(id) {
			return false
		}
	}
	if len(c.OnlyRules) == 0 {
		return true
	}
	for _, id := range ids {
		if c.OnlyRules[key(id)] {
			return true
		}
	}
	return false
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[key(ruleID)]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the options configured for a rule.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[key(ruleID)]
}

// Disable disables a rule by ID or alias.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[key(ruleID)] = true
	return c
}

// Allow restricts linting to the given rules. Calling it with no IDs lifts
// the restriction.
func (c *Config) Allow(ruleIDs ...string) *Config {
	c.OnlyRules = make(map[string]bool, len(ruleIDs))
	for _, id := range ruleIDs {
		c.OnlyRules[key(id)] = true
	}
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	c.SeverityOverrides[key(ruleID)] = severity
	return c
}

// SetRuleOptions sets the options for a rule.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	c.RuleOptions[key(ruleID)] = opts
	return c
}
