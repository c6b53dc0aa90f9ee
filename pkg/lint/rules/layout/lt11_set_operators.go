package layout

import (
	"fmt"

	"github.com/CommonCrisis/sqlfluff/pkg/lint"
	"github.com/CommonCrisis/sqlfluff/pkg/segment"
	"github.com/CommonCrisis/sqlfluff/pkg/token"
)

// SetOperators requires set operators to sit on their own line.
var SetOperators = lint.RuleDef{
	ID:          "LT11",
	Name:        "layout.set_operators",
	Group:       "layout",
	Aliases:     []string{"L065"},
	Description: "Set operators should be surrounded by newlines.",
	Severity:    lint.SeverityWarning,
	CrawlTypes:  []string{segment.TypeSetOperator},
	Eval:        checkSetOperators,
	Impact:      lint.ImpactLow,
	Rationale: "A set operator joins two complete queries. Keeping it on its own line " +
		"makes the boundary between the queries obvious when reading or diffing.",
	BadExample: `SELECT 'a' AS col UNION ALL
SELECT 'b' AS col`,
	GoodExample: `SELECT 'a' AS col
UNION ALL
SELECT 'b' AS col`,
	Fix: "Insert a line break before and after the operator. Any number of blank lines is allowed.",
}

func checkSetOperators(ctx *lint.RuleContext) ([]lint.Result, error) {
	op := ctx.Segment
	if !op.Pos.IsValid() {
		return nil, fmt.Errorf("set operator %q: %w", op.Raw, lint.ErrNoPosition)
	}

	fixes, err := ctx.Rebreak(op)
	if err != nil {
		return nil, err
	}

	pre, post := partitionEdits(fixes, op.Pos)

	var results []lint.Result
	if len(pre) > 0 {
		results = append(results, lint.Result{
			Anchor:      op,
			Description: "Set operators should be surrounded by newlines. Missing newline before set operator " + op.Raw + ".",
			Fixes:       fixes,
		})
	}
	if len(post) > 0 {
		results = append(results, lint.Result{
			Anchor:      op,
			Description: "Set operators should be surrounded by newlines. Missing newline after set operator " + op.Raw + ".",
			Fixes:       fixes,
		})
	}
	return results, nil
}

// partitionEdits splits edits by whether their anchor lies strictly before
// or strictly after pos. Edits anchored at pos, or without a position, land
// in neither half.
func partitionEdits(edits []segment.Edit, pos token.Position) (pre, post []segment.Edit) {
	for _, e := range edits {
		if e.Anchor == nil || !e.Anchor.Pos.IsValid() {
			continue
		}
		switch token.Compare(e.Anchor.Pos, pos) {
		case -1:
			pre = append(pre, e)
		case 1:
			post = append(post, e)
		}
	}
	return pre, post
}
