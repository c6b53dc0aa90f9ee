package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CommonCrisis/sqlfluff/pkg/lint"
	"github.com/CommonCrisis/sqlfluff/pkg/reflow"
	"github.com/CommonCrisis/sqlfluff/pkg/segment"
)

const projectConfig = `max_loops: 5
lint:
  disabled: [L065]
  severity:
    LT11: error
  rules:
    LT11:
      note: kept
layout:
  indent_unit: tab
  types:
    set_operator:
      line_position: leading
`

// writeConfig writes a config file into dir and returns its path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultMaxLoops, cfg.MaxLoops)
	assert.Equal(t, DefaultProcesses, cfg.Processes)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, reflow.DefaultConfig(), cfg.Layout)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), ".sqlfluff.yaml", projectConfig)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, 5, cfg.MaxLoops)
	assert.Equal(t, []string{"L065"}, cfg.Lint.Disabled)
	assert.Equal(t, map[string]string{"LT11": "error"}, cfg.Lint.Severity)
	assert.Equal(t, "kept", cfg.Lint.Rules["LT11"]["note"])
	assert.Equal(t, reflow.IndentUnitTab, cfg.Layout.IndentUnit)
	assert.Equal(t, 4, cfg.Layout.TabSpaceSize, "unset keys keep their defaults")
	assert.Equal(t, reflow.LinePositionLeading, cfg.Layout.LinePositionFor(segment.TypeSetOperator))
}

func TestLoadConfig_UpwardSearch(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		depth int
	}{
		{name: "yaml in cwd", file: ".sqlfluff.yaml", depth: 0},
		{name: "yml in cwd", file: ".sqlfluff.yml", depth: 0},
		{name: "yaml two levels up", file: ".sqlfluff.yaml", depth: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			root := t.TempDir()
			path := writeConfig(t, root, tt.file, "max_loops: 3\n")

			dir := root
			for i := 0; i < tt.depth; i++ {
				dir = filepath.Join(dir, "sub")
			}
			require.NoError(t, os.MkdirAll(dir, 0755))
			t.Chdir(dir)

			cfg, err := LoadConfig("", nil)
			require.NoError(t, err)
			assert.Equal(t, 3, cfg.MaxLoops)

			// Compare resolved paths; temp dirs may sit behind symlinks.
			want, err := filepath.EvalSymlinks(path)
			require.NoError(t, err)
			got, err := filepath.EvalSymlinks(GetConfigFileUsed())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), ".sqlfluff.yaml", projectConfig)

	t.Setenv("SQLFLUFF_MAX_LOOPS", "7")
	t.Setenv("SQLFLUFF_LINT__DISABLED", "LT11,AM02")
	t.Setenv("SQLFLUFF_LAYOUT__INDENT_UNIT", "space")
	t.Setenv("SQLFLUFF_LAYOUT__TYPES__SET_OPERATOR__LINE_POSITION", "trailing")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.MaxLoops, "env var should override config file")
	assert.Equal(t, []string{"LT11", "AM02"}, cfg.Lint.Disabled)
	assert.Equal(t, reflow.IndentUnitSpace, cfg.Layout.IndentUnit)
	assert.Equal(t, reflow.LinePositionTrailing, cfg.Layout.LinePositionFor(segment.TypeSetOperator))
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), ".sqlfluff.yaml", projectConfig)
	t.Setenv("SQLFLUFF_MAX_LOOPS", "7")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-loops", 0, "")
	flags.StringSlice("disable", nil, "")
	flags.StringSlice("rule", nil, "")
	flags.String("indent-unit", "", "")
	flags.BoolP("verbose", "v", false, "")
	require.NoError(t, flags.Parse([]string{"--max-loops", "2", "--disable", "AM02", "--rule", "LT11", "-v"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MaxLoops, "flag value should override config file and env var")
	assert.Equal(t, []string{"AM02"}, cfg.Lint.Disabled)
	assert.Equal(t, []string{"LT11"}, cfg.Lint.Only)
	assert.True(t, cfg.Verbose)
	// Unchanged flags leave lower layers alone.
	assert.Equal(t, reflow.IndentUnitTab, cfg.Layout.IndentUnit)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{name: "severity", content: "lint:\n  severity:\n    LT11: loud\n", errSubstr: `invalid severity "loud" for rule LT11`},
		{name: "line position", content: "layout:\n  types:\n    set_operator:\n      line_position: sideways\n", errSubstr: "invalid line_position"},
		{name: "indent unit", content: "layout:\n  indent_unit: tabs\n", errSubstr: "invalid indent_unit"},
		{name: "output", content: "output: html\n", errSubstr: "invalid output"},
		{name: "max loops", content: "max_loops: 0\n", errSubstr: "invalid max_loops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			path := writeConfig(t, t.TempDir(), ".sqlfluff.yaml", tt.content)

			_, err := LoadConfig(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
			assert.Nil(t, GetCurrentConfig())
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestConfig_ToLintConfig(t *testing.T) {
	cfg := &Config{
		MaxLoops: 1,
		Lint: LintConfig{
			Disabled: []string{" L065 ", ""},
			Only:     []string{"LT11", "AM02"},
			Severity: map[string]string{"lt11": "error", "AM02": "bogus"},
			Rules:    map[string]RuleOptions{"LT11": {"flag": true}},
		},
		Layout: reflow.Config{IndentUnit: reflow.IndentUnitTab},
	}

	lintCfg := cfg.ToLintConfig()

	assert.True(t, lintCfg.IsDisabled("L065"))
	assert.True(t, lintCfg.OnlyRules["LT11"])
	assert.True(t, lintCfg.OnlyRules["AM02"])
	assert.Equal(t, lint.SeverityError, lintCfg.GetSeverity("LT11", lint.SeverityWarning))
	assert.Equal(t, lint.SeverityHint, lintCfg.GetSeverity("AM02", lint.SeverityHint))
	assert.Equal(t, map[string]any{"flag": true}, lintCfg.GetRuleOptions("LT11"))

	// Zero layout fields fall back to the defaults.
	assert.Equal(t, reflow.IndentUnitTab, lintCfg.Layout.IndentUnit)
	assert.Equal(t, 4, lintCfg.Layout.TabSpaceSize)
	assert.Equal(t, reflow.LinePositionAlone, lintCfg.Layout.LinePositionFor(segment.TypeSetOperator))
}

func TestConfig_Workers(t *testing.T) {
	assert.Equal(t, 3, (&Config{Processes: 3}).Workers())
	assert.GreaterOrEqual(t, (&Config{Processes: 0}).Workers(), 1)
	assert.Equal(t, 1, (&Config{Processes: -100000}).Workers())
}

func TestGetLogger_Fallback(t *testing.T) {
	logger := GetLogger(context.Background())
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), 0))
}
