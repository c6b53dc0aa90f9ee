package lint

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/CommonCrisis/sqlfluff/pkg/parser"
	"github.com/CommonCrisis/sqlfluff/pkg/segment"
)

// DefaultMaxLoops bounds the fix loop.
const DefaultMaxLoops = 10

// Linter runs registered rules against parsed SQL.
type Linter struct {
	registry  *Registry
	config    *Config
	rebreaker Rebreaker
	logger    *slog.Logger
	maxLoops  int
}

// Option configures a Linter.
type Option func(*Linter)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRebreaker replaces the reflow subsystem handed to rules.
func WithRebreaker(r Rebreaker) Option {
	return func(l *Linter) {
		if r != nil {
			l.rebreaker = r
		}
	}
}

// WithMaxLoops bounds the number of lint/fix passes Fix performs.
func WithMaxLoops(n int) Option {
	return func(l *Linter) {
		if n > 0 {
			l.maxLoops = n
		}
	}
}

// NewLinter creates a linter over registry with optional configuration.
func NewLinter(registry *Registry, config *Config, opts ...Option) *Linter {
	if config == nil {
		config = NewConfig()
	}
	l := &Linter{
		registry:  registry,
		config:    config,
		rebreaker: DefaultRebreaker,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxLoops:  DefaultMaxLoops,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lint walks root and returns the diagnostics of every enabled rule in
// source order. A rule error aborts the walk.
func (l *Linter) Lint(root *segment.Segment) ([]Diagnostic, error) {
	var diagnostics []Diagnostic
	var lintErr error

	root.Walk(func(seg *segment.Segment, parents []*segment.Segment) bool {
		if lintErr != nil {
			return false
		}
		for _, rule := range l.registry.RulesForType(seg.Type) {
			if !l.config.IsEnabled(rule) {
				continue
			}

			ctx := &RuleContext{
				Segment:     seg,
				ParentStack: slices.Clone(parents),
				Layout:      l.config.Layout,
				Options:     l.config.GetRuleOptions(rule.ID()),
				Rebreaker:   l.rebreaker,
			}
			results, err := rule.Eval(ctx)
			if err != nil {
				lintErr = fmt.Errorf("%s: %w: %w", rule.ID(), ErrRuleFailed, err)
				return false
			}

			for _, res := range results {
				diag, err := l.diagnostic(rule, res)
				if err != nil {
					lintErr = fmt.Errorf("%s: %w: %w", rule.ID(), ErrRuleFailed, err)
					return false
				}
				diagnostics = append(diagnostics, diag)
			}
		}
		return true
	})
	if lintErr != nil {
		return nil, lintErr
	}

	l.logger.Debug("linted tree", "diagnostics", len(diagnostics))
	return diagnostics, nil
}

// LintString parses src and lints the result.
func (l *Linter) LintString(src string) ([]Diagnostic, error) {
	root, err := parser.ParseWithOptions(src, parser.ParseOptions{Logger: l.logger})
	if err != nil {
		return nil, err
	}
	return l.Lint(root)
}

func (l *Linter) diagnostic(rule SegmentRule, res Result) (Diagnostic, error) {
	diag := Diagnostic{
		RuleID:           rule.ID(),
		Severity:         l.severity(rule),
		Message:          res.Description,
		Pos:              res.Anchor.Pos,
		EndPos:           res.Anchor.End(),
		DocumentationURL: BuildDocURL(rule.ID()),
		ImpactScore:      impactOf(rule),
	}
	if len(res.Fixes) == 0 {
		return diag, nil
	}

	edits, err := TextEdits(res.Fixes)
	if err != nil {
		return Diagnostic{}, err
	}
	diag.Edits = res.Fixes
	diag.Fixes = []Fix{{Description: res.Description, TextEdits: edits}}
	diag.AutoFixable = true
	return diag, nil
}

// severity applies overrides keyed by ID first, then by alias.
func (l *Linter) severity(rule Rule) Severity {
	for _, id := range append([]string{rule.ID()}, rule.Aliases()...) {
		if sev, ok := l.config.SeverityOverrides[key(id)]; ok {
			return sev
		}
	}
	return rule.DefaultSeverity()
}

// FixResult is the outcome of Linter.Fix.
type FixResult struct {
	Source    string       // fixed source
	Changed   bool         // Source differs from the input
	Loops     int          // lint passes that applied edits
	Applied   int          // diagnostics whose fixes were applied
	Remaining []Diagnostic // diagnostics left after the last pass
}

// Fix repeatedly lints src and applies the fixes of every auto-fixable
// diagnostic until nothing changes or the loop limit is reached.
// Diagnostics whose edits overlap an already selected fix wait for the
// next pass.
func (l *Linter) Fix(src string) (FixResult, error) {
	result := FixResult{Source: src}

	for loop := 0; loop < l.maxLoops; loop++ {
		diags, err := l.LintString(result.Source)
		if err != nil {
			return result, err
		}

		var selected []segment.Edit
		applied := 0
		for _, d := range diags {
			if !d.AutoFixable {
				continue
			}
			candidate := append(slices.Clone(selected), d.Edits...)
			if _, err := segment.ApplyEdits(result.Source, candidate); err != nil {
				if errors.Is(err, segment.ErrOverlappingEdits) {
					continue
				}
				return result, fmt.Errorf("%s: %w", d.RuleID, err)
			}
			selected = candidate
			applied++
		}
		if len(selected) == 0 {
			break
		}

		fixed, err := segment.ApplyEdits(result.Source, selected)
		if err != nil {
			return result, err
		}
		if fixed == result.Source {
			break
		}

		l.logger.Debug("applied fixes", "loop", loop+1, "diagnostics", applied, "edits", len(segment.DedupEdits(selected)))
		result.Source = fixed
		result.Loops++
		result.Applied += applied
	}

	remaining, err := l.LintString(result.Source)
	if err != nil {
		return result, err
	}
	result.Remaining = remaining
	result.Changed = result.Source != src
	return result, nil
}
