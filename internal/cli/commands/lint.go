package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/CommonCrisis/sqlfluff/internal/cli/output"
	"github.com/CommonCrisis/sqlfluff/pkg/lint"
	"github.com/CommonCrisis/sqlfluff/pkg/parser"
)

// parseErrorRuleID labels diagnostics for files that failed to parse.
const parseErrorRuleID = "PRS"

// errLintIssues makes the process exit non-zero when violations are found.
var errLintIssues = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths    []string      // Files or directories; "-" reads stdin
	Format   string        // Output format: text, markdown, json, table
	Disable  []string      // Rule IDs to disable
	Severity string        // Minimum severity: error, warning, info, hint
	Rules    []string      // Run only specific rules
	Watch    bool          // Re-lint on file changes
	Debounce time.Duration // Quiet period before re-linting in watch mode
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint SQL files",
		Long: `Analyze SQL files for layout violations.

Directories are searched recursively for .sql files. Use "-" to read
from stdin. Rules can be configured in .sqlfluff.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint every SQL file below the current directory
  sqlfluff lint

  # Lint specific paths
  sqlfluff lint models/staging query.sql

  # Lint from stdin
  echo "SELECT 1 UNION SELECT 2" | sqlfluff lint -

  # Output as JSON
  sqlfluff lint --format json

  # Disable specific rules
  sqlfluff lint --disable LT11

  # Re-lint whenever a file changes
  sqlfluff lint --watch models`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, table")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch for changes and re-lint")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 200*time.Millisecond, "Quiet period before re-linting in watch mode")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json", "table"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	if _, ok := lint.ParseSeverity(opts.Severity); !ok {
		return fmt.Errorf("invalid severity %q: expected one of error, warning, info, hint", opts.Severity)
	}

	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}

	if opts.Watch {
		return watchAndLint(cmd, cmdCtx, opts)
	}

	results, analyzed, err := lintPaths(cmd.Context(), cmd.InOrStdin(), cmdCtx, opts)
	if err != nil {
		return err
	}
	results = filterBySeverity(results, opts.Severity)

	if renderLintResults(cmdCtx.Renderer, results, analyzed) {
		return errLintIssues
	}
	return nil
}

// lintFileResult holds lint results for a single file.
type lintFileResult struct {
	Path        string
	Diagnostics []lint.Diagnostic
}

// lintPaths lints every file named by opts in parallel. Results keep the
// order of the collected files; only files with findings are returned.
func lintPaths(ctx context.Context, stdin io.Reader, cmdCtx *CommandContext, opts *LintOptions) ([]lintFileResult, int, error) {
	files, err := collectFiles(opts.Paths)
	if err != nil {
		return nil, 0, err
	}

	linter := cmdCtx.NewLinter(buildLintConfig(cmdCtx.Cfg, opts.Disable, opts.Rules))
	results := make([]lintFileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cmdCtx.Cfg.Workers())
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := readSource(stdin, path)
			if err != nil {
				return err
			}
			diags, err := lintSource(linter, src)
			if err != nil {
				return fmt.Errorf("%s: %w", displayPath(path), err)
			}
			cmdCtx.Logger.Debug("linted file", "path", displayPath(path), "diagnostics", len(diags))
			results[i] = lintFileResult{Path: displayPath(path), Diagnostics: diags}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var withIssues []lintFileResult
	for _, r := range results {
		if len(r.Diagnostics) > 0 {
			withIssues = append(withIssues, r)
		}
	}
	return withIssues, len(files), nil
}

// lintSource lints src, reporting a parse failure as a diagnostic.
func lintSource(linter *lint.Linter, src string) ([]lint.Diagnostic, error) {
	diags, err := linter.LintString(src)
	var perr *parser.Error
	if errors.As(err, &perr) {
		return []lint.Diagnostic{{
			RuleID:   parseErrorRuleID,
			Severity: lint.SeverityError,
			Message:  perr.Message,
			Pos:      perr.Pos,
			EndPos:   perr.Pos,
		}}, nil
	}
	return diags, err
}

func filterBySeverity(results []lintFileResult, severityThreshold string) []lintFileResult {
	threshold, ok := lint.ParseSeverity(severityThreshold)
	if !ok {
		threshold = lint.SeverityHint
	}

	var filtered []lintFileResult
	for _, r := range results {
		var diags []lint.Diagnostic
		for _, d := range r.Diagnostics {
			if d.Severity <= threshold {
				diags = append(diags, d)
			}
		}
		if len(diags) > 0 {
			filtered = append(filtered, lintFileResult{
				Path:        r.Path,
				Diagnostics: diags,
			})
		}
	}
	return filtered
}

func summarize(results []lintFileResult, analyzed int) output.LintSummary {
	summary := output.LintSummary{
		FilesAnalyzed:   analyzed,
		FilesWithIssues: len(results),
	}
	for _, res := range results {
		summary.TotalIssues += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			case lint.SeverityHint:
				summary.Hints++
			}
		}
	}
	return summary
}

// renderLintResults writes the results and reports whether any issue was found.
func renderLintResults(r *output.Renderer, results []lintFileResult, analyzed int) bool {
	summary := summarize(results, analyzed)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		jsonOutput := output.LintOutput{
			Files:   []output.LintFileResult{},
			Summary: summary,
		}
		for _, res := range results {
			fileResult := output.LintFileResult{Path: res.Path}
			for _, d := range res.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
					RuleID:    d.RuleID,
					Severity:  d.Severity.String(),
					Message:   d.Message,
					Line:      d.Pos.Line,
					Column:    d.Pos.Column,
					EndLine:   d.EndPos.Line,
					EndColumn: d.EndPos.Column,
					Fixable:   d.AutoFixable,
					DocURL:    d.DocumentationURL,
				})
			}
			jsonOutput.Files = append(jsonOutput.Files, fileResult)
		}
		_ = r.JSON(jsonOutput)
		return summary.TotalIssues > 0

	case output.ModeTable:
		if len(results) == 0 {
			r.Success("No lint issues found")
			return false
		}
		var rows []table.Row
		for _, res := range results {
			for _, d := range res.Diagnostics {
				rows = append(rows, table.Row{res.Path, d.Pos.Line, d.Pos.Column, d.RuleID, d.Severity.String(), d.Message})
			}
		}
		r.Table(table.Row{"File", "Line", "Col", "Rule", "Severity", "Message"}, rows)
		r.Printf("Summary: %s\n", summaryLine(summary))
		return true
	}

	if len(results) == 0 {
		r.Success("No lint issues found")
		return false
	}

	// Text/Markdown output
	for _, res := range results {
		r.Println(r.Styles().FilePath.Render(res.Path))
		for _, d := range res.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
			if d.Pos.Line == 0 {
				loc = "-"
			}
			r.Printf("  %s  %s  %s  %s\n",
				r.Styles().Muted.Render(fmt.Sprintf("%-5s", loc)),
				severityStyle(r, d.Severity),
				r.Styles().RuleID.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println("")
	}

	r.Printf("Summary: %s\n", summaryLine(summary))
	return true
}

func summaryLine(summary output.LintSummary) string {
	parts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", summary.Hints))
	}
	return fmt.Sprintf("%s in %d of %d files", strings.Join(parts, ", "), summary.FilesWithIssues, summary.FilesAnalyzed)
}

func severityStyle(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case lint.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
