package lint

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CommonCrisis/sqlfluff/internal/testutil"
	"github.com/CommonCrisis/sqlfluff/pkg/parser"
	"github.com/CommonCrisis/sqlfluff/pkg/reflow"
	"github.com/CommonCrisis/sqlfluff/pkg/segment"
	"github.com/CommonCrisis/sqlfluff/pkg/token"
)

// upperKeywords replaces lowercase keywords with the given casing function.
func upperKeywords(id string, severity Severity, transform func(string) string) *mockSegmentRule {
	return &mockSegmentRule{
		id:       id,
		severity: severity,
		crawl:    []string{segment.TypeKeyword},
		eval: func(ctx *RuleContext) ([]Result, error) {
			kw := ctx.Segment
			if kw.Raw != strings.ToLower(kw.Raw) {
				return nil, nil
			}
			repl := &segment.Segment{Type: segment.TypeKeyword, Raw: transform(kw.Raw)}
			return []Result{{
				Anchor:      kw,
				Description: "keywords must be upper case",
				Fixes:       []segment.Edit{segment.Replace(kw, repl)},
			}}, nil
		},
	}
}

func newTestLinter(t *testing.T, config *Config, rules ...SegmentRule) *Linter {
	t.Helper()
	registry, err := NewRegistry(rules...)
	require.NoError(t, err)
	return NewLinter(registry, config, WithLogger(testutil.NewTestLogger(t)))
}

func TestLinter_Lint(t *testing.T) {
	linter := newTestLinter(t, NewConfig(), upperKeywords("CP01", SeverityInfo, strings.ToUpper))

	diags, err := linter.LintString("select 1\nUNION all select 2")
	require.NoError(t, err)
	require.Len(t, diags, 3)

	first := diags[0]
	assert.Equal(t, "CP01", first.RuleID)
	assert.Equal(t, SeverityInfo, first.Severity)
	assert.Equal(t, "keywords must be upper case", first.Message)
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, first.Pos)
	assert.Equal(t, token.Position{Line: 1, Column: 7, Offset: 6}, first.EndPos)
	assert.True(t, first.AutoFixable)
	require.Len(t, first.Fixes, 1)
	assert.Equal(t, []TextEdit{{
		Pos:     token.Position{Line: 1, Column: 1, Offset: 0},
		EndPos:  token.Position{Line: 1, Column: 7, Offset: 6},
		NewText: "SELECT",
	}}, first.Fixes[0].TextEdits)
	require.Len(t, first.Edits, 1)

	// Source order
	assert.Equal(t, 2, diags[1].Pos.Line)
	assert.Equal(t, 7, diags[1].Pos.Column)
	assert.Equal(t, 11, diags[2].Pos.Column)
}

func TestLinter_RuleContext(t *testing.T) {
	var seen []*RuleContext
	rule := &mockSegmentRule{
		id:    "CTX01",
		crawl: []string{segment.TypeSetOperator},
		eval: func(ctx *RuleContext) ([]Result, error) {
			seen = append(seen, ctx)
			return nil, nil
		},
	}

	config := NewConfig().SetRuleOptions("CTX01", map[string]any{"flag": true})
	config.Layout.IndentUnit = reflow.IndentUnitTab
	linter := newTestLinter(t, config, rule)

	root, err := parser.Parse("SELECT 1 UNION SELECT 2 EXCEPT SELECT 3")
	require.NoError(t, err)
	_, err = linter.Lint(root)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	for _, ctx := range seen {
		assert.Equal(t, segment.TypeSetOperator, ctx.Segment.Type)
		assert.Same(t, root, ctx.Root())
		assert.Equal(t, segment.TypeSetExpression, ctx.Parent().Type)
		assert.Equal(t, []string{segment.TypeFile, segment.TypeStatement, segment.TypeSetExpression}, []string{
			ctx.ParentStack[0].Type, ctx.ParentStack[1].Type, ctx.ParentStack[2].Type,
		})
		assert.Equal(t, reflow.IndentUnitTab, ctx.Layout.IndentUnit)
		assert.Equal(t, map[string]any{"flag": true}, ctx.Options)
	}
	assert.Equal(t, "UNION", seen[0].Segment.Raw)
	assert.Equal(t, "EXCEPT", seen[1].Segment.Raw)
}

func TestLinter_ConfigFilters(t *testing.T) {
	rule := upperKeywords("CP01", SeverityInfo, strings.ToUpper)
	rule.aliases = []string{"L010"}

	tests := []struct {
		name         string
		config       *Config
		wantCount    int
		wantSeverity Severity
	}{
		{name: "defaults", config: NewConfig(), wantCount: 1, wantSeverity: SeverityInfo},
		{name: "disabled", config: NewConfig().Disable("CP01"), wantCount: 0},
		{name: "not allowed", config: NewConfig().Allow("LT11"), wantCount: 0},
		{name: "severity by id", config: NewConfig().SetSeverity("CP01", SeverityError), wantCount: 1, wantSeverity: SeverityError},
		{name: "severity by alias", config: NewConfig().SetSeverity("L010", SeverityHint), wantCount: 1, wantSeverity: SeverityHint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, err := newTestLinter(t, tt.config, rule).LintString("select 1")
			require.NoError(t, err)
			require.Len(t, diags, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantSeverity, diags[0].Severity)
			}
		})
	}
}

func TestLinter_RuleError(t *testing.T) {
	errBoom := errors.New("boom")
	rule := &mockSegmentRule{
		id:    "ERR01",
		crawl: []string{segment.TypeKeyword},
		eval: func(*RuleContext) ([]Result, error) {
			return nil, errBoom
		},
	}

	diags, err := newTestLinter(t, NewConfig(), rule).LintString("SELECT 1")
	assert.Nil(t, diags)
	assert.ErrorIs(t, err, ErrRuleFailed)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "ERR01")
}

func TestLinter_UnpositionedFix(t *testing.T) {
	rule := &mockSegmentRule{
		id:    "BAD01",
		crawl: []string{segment.TypeKeyword},
		eval: func(ctx *RuleContext) ([]Result, error) {
			return []Result{{
				Anchor: ctx.Segment,
				Fixes:  []segment.Edit{segment.Delete(segment.NewWhitespace(" "))},
			}}, nil
		},
	}

	_, err := newTestLinter(t, NewConfig(), rule).LintString("SELECT 1")
	assert.ErrorIs(t, err, segment.ErrAnchorWithoutPosition)
}

func TestLinter_ParseError(t *testing.T) {
	_, err := newTestLinter(t, NewConfig()).LintString("SELECT (1")
	assert.ErrorIs(t, err, parser.ErrUnbalancedParen)
}

func TestLinter_Fix(t *testing.T) {
	t.Run("applies and converges", func(t *testing.T) {
		linter := newTestLinter(t, NewConfig(), upperKeywords("CP01", SeverityInfo, strings.ToUpper))

		res, err := linter.Fix("select 1 union select 2")
		require.NoError(t, err)
		assert.Equal(t, "SELECT 1 UNION SELECT 2", res.Source)
		assert.True(t, res.Changed)
		assert.Equal(t, 1, res.Loops)
		assert.Equal(t, 3, res.Applied)
		assert.Empty(t, res.Remaining)
	})

	t.Run("overlapping fixes wait", func(t *testing.T) {
		title := func(s string) string { return strings.ToUpper(s[:1]) + s[1:] }
		linter := newTestLinter(t, NewConfig(),
			upperKeywords("CP01", SeverityInfo, strings.ToUpper),
			upperKeywords("CP02", SeverityInfo, title),
		)

		res, err := linter.Fix("select 1")
		require.NoError(t, err)
		assert.Equal(t, "SELECT 1", res.Source)
		assert.Equal(t, 1, res.Applied)
	})

	t.Run("nothing to fix", func(t *testing.T) {
		linter := newTestLinter(t, NewConfig(), upperKeywords("CP01", SeverityInfo, strings.ToUpper))

		res, err := linter.Fix("SELECT 1")
		require.NoError(t, err)
		assert.Equal(t, "SELECT 1", res.Source)
		assert.False(t, res.Changed)
		assert.Zero(t, res.Loops)
	})

	t.Run("loop limit", func(t *testing.T) {
		// Prepends a comment on every pass, never converging.
		rule := &mockSegmentRule{
			id:    "LOOP01",
			crawl: []string{segment.TypeStatement},
			eval: func(ctx *RuleContext) ([]Result, error) {
				first := ctx.Segment.Leaves()[0]
				return []Result{{
					Anchor:      ctx.Segment,
					Description: "again",
					Fixes:       []segment.Edit{segment.CreateBefore(first, &segment.Segment{Type: segment.TypeComment, Raw: "/**/"})},
				}}, nil
			},
		}
		registry, err := NewRegistry(rule)
		require.NoError(t, err)
		linter := NewLinter(registry, nil, WithMaxLoops(3))

		res, err := linter.Fix("SELECT 1")
		require.NoError(t, err)
		assert.Equal(t, 3, res.Loops)
		assert.Equal(t, "/**//**//**/SELECT 1", res.Source)
		assert.Len(t, res.Remaining, 1)
	})
}

func TestRebreakerFunc(t *testing.T) {
	called := false
	r := RebreakerFunc(func(_, _ *segment.Segment, _ reflow.Config) ([]segment.Edit, error) {
		called = true
		return nil, nil
	})

	seg := &segment.Segment{Type: segment.TypeKeyword}
	ctx := &RuleContext{Segment: seg, Rebreaker: r}
	_, err := ctx.Rebreak(seg)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Same(t, seg, ctx.Root())
	assert.Nil(t, ctx.Parent())
}
