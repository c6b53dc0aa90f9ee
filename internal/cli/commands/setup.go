package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/CommonCrisis/sqlfluff/internal/cli/config"
	"github.com/CommonCrisis/sqlfluff/internal/cli/output"
	"github.com/CommonCrisis/sqlfluff/pkg/lint"
	"github.com/CommonCrisis/sqlfluff/pkg/lint/rules"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Registry *lint.Registry
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with the built-in rule
// registry. A non-empty format overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	registry, err := rules.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build rule registry: %w", err)
	}

	mode := output.Mode(cfg.OutputFormat)
	if format != "" {
		mode = output.Mode(format)
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Registry: registry,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}, nil
}

// NewLinter creates a linter over the context's registry.
func (c *CommandContext) NewLinter(lintCfg *lint.Config) *lint.Linter {
	return lint.NewLinter(c.Registry, lintCfg,
		lint.WithLogger(c.Logger),
		lint.WithMaxLoops(c.Cfg.MaxLoops),
	)
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// buildLintConfig creates the lint config from the project config and
// command-line overrides.
func buildLintConfig(cfg *config.Config, disable, only []string) *lint.Config {
	var lintCfg *lint.Config
	if cfg != nil {
		lintCfg = cfg.ToLintConfig()
	} else {
		lintCfg = lint.NewConfig()
	}

	// CLI overrides (higher precedence)
	for _, id := range disable {
		lintCfg.Disable(id)
	}
	if len(only) > 0 {
		lintCfg.Allow(only...)
	}
	return lintCfg
}
