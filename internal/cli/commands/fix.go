package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/CommonCrisis/sqlfluff/internal/cli/output"
	"github.com/CommonCrisis/sqlfluff/pkg/lint"
)

// errUnfixable makes the process exit non-zero when violations survive fixing.
var errUnfixable = errors.New("unfixable lint issues remain")

// FixOptions holds options for the fix command.
type FixOptions struct {
	Paths   []string // Files or directories; "-" reads stdin
	Format  string   // Output format for the summary
	Stdout  bool     // Print the fixed source instead of writing files
	Disable []string // Rule IDs to disable
	Rules   []string // Run only specific rules
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Fix SQL files in place",
		Long: `Apply the fixes of auto-fixable rules.

Files are rewritten in place. With --stdout, or when reading from stdin,
the fixed source is printed instead. Each file is linted and fixed
repeatedly until it is stable or max_loops passes have run.`,
		Example: `  # Fix every SQL file below the current directory
  sqlfluff fix

  # Print the fixed version of a single file
  sqlfluff fix --stdout query.sql

  # Fix stdin
  echo "SELECT 1 UNION SELECT 2" | sqlfluff fix -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runFix(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, table")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Print the fixed source instead of writing files")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().Int("max-loops", 0, "Maximum lint/fix passes per file")

	return cmd
}

// fixFileResult holds the outcome of fixing a single file.
type fixFileResult struct {
	Path   string
	Result lint.FixResult
}

func runFix(cmd *cobra.Command, opts *FixOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}

	files, err := collectFiles(opts.Paths)
	if err != nil {
		return err
	}
	toStdout := opts.Stdout || (len(files) == 1 && files[0] == stdinPath)
	if toStdout && len(files) != 1 {
		return fmt.Errorf("--stdout requires exactly one file, got %d", len(files))
	}

	linter := cmdCtx.NewLinter(buildLintConfig(cmdCtx.Cfg, opts.Disable, opts.Rules))
	stdin := cmd.InOrStdin()
	results := make([]fixFileResult, len(files))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cmdCtx.Cfg.Workers())
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fixFile(linter, stdin, path, !toStdout)
			if err != nil {
				return fmt.Errorf("%s: %w", displayPath(path), err)
			}
			cmdCtx.Logger.Debug("fixed file", "path", displayPath(path), "loops", res.Loops, "applied", res.Applied)
			results[i] = fixFileResult{Path: displayPath(path), Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	remaining := 0
	for _, res := range results {
		remaining += len(res.Result.Remaining)
	}

	if toStdout {
		_, _ = io.WriteString(cmdCtx.Renderer.Writer(), results[0].Result.Source)
	} else {
		renderFixResults(cmdCtx.Renderer, results)
	}

	if remaining > 0 {
		return errUnfixable
	}
	return nil
}

// fixFile fixes one file, writing it back when write is set and the
// source changed.
func fixFile(linter *lint.Linter, stdin io.Reader, path string, write bool) (lint.FixResult, error) {
	src, err := readSource(stdin, path)
	if err != nil {
		return lint.FixResult{}, err
	}
	res, err := linter.Fix(src)
	if err != nil {
		return res, err
	}
	if !write || !res.Changed || path == stdinPath {
		return res, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return res, err
	}
	if err := os.WriteFile(path, []byte(res.Source), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("failed to write fixes: %w", err)
	}
	return res, nil
}

func renderFixResults(r *output.Renderer, results []fixFileResult) {
	summary := output.FixSummary{FilesAnalyzed: len(results)}
	for _, res := range results {
		if res.Result.Changed {
			summary.FilesFixed++
		}
		summary.FixesApplied += res.Result.Applied
		summary.Remaining += len(res.Result.Remaining)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := output.FixOutput{Files: []output.FixFileResult{}, Summary: summary}
		for _, res := range results {
			out.Files = append(out.Files, output.FixFileResult{
				Path:      res.Path,
				Changed:   res.Result.Changed,
				Loops:     res.Result.Loops,
				Applied:   res.Result.Applied,
				Remaining: len(res.Result.Remaining),
			})
		}
		_ = r.JSON(out)
		return

	case output.ModeTable:
		var rows []table.Row
		for _, res := range results {
			rows = append(rows, table.Row{res.Path, res.Result.Changed, res.Result.Applied, len(res.Result.Remaining)})
		}
		r.Table(table.Row{"File", "Changed", "Applied", "Remaining"}, rows)
	default:
		for _, res := range results {
			switch {
			case res.Result.Changed:
				r.Printf("%s %s (%d fixes)\n",
					r.Styles().Success.Render("FIXED"),
					r.Styles().FilePath.Render(res.Path),
					res.Result.Applied,
				)
			case len(res.Result.Remaining) > 0:
				r.Printf("%s %s\n", r.Styles().Warning.Render("UNFIXED"), r.Styles().FilePath.Render(res.Path))
			default:
				continue
			}
			for _, d := range res.Result.Remaining {
				r.Printf("  %s  %s  %s\n", fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column), d.RuleID, d.Message)
			}
		}
	}

	r.Printf("Fixed %d of %d files (%d fixes applied, %d remaining)\n",
		summary.FilesFixed, summary.FilesAnalyzed, summary.FixesApplied, summary.Remaining)
}
