package lint

import (
	"github.com/CommonCrisis/sqlfluff/pkg/reflow"
	"github.com/CommonCrisis/sqlfluff/pkg/segment"
)

// Rebreaker computes the line break edits needed around a segment.
type Rebreaker interface {
	Rebreak(target, root *segment.Segment, cfg reflow.Config) ([]segment.Edit, error)
}

// RebreakerFunc adapts a function to the Rebreaker interface.
type RebreakerFunc func(target, root *segment.Segment, cfg reflow.Config) ([]segment.Edit, error)

// Rebreak calls f.
func (f RebreakerFunc) Rebreak(target, root *segment.Segment, cfg reflow.Config) ([]segment.Edit, error) {
	return f(target, root, cfg)
}

// DefaultRebreaker is the reflow subsystem's implementation.
var DefaultRebreaker Rebreaker = RebreakerFunc(reflow.Rebreak)

// RuleContext is everything a rule sees when evaluating one segment.
type RuleContext struct {
	Segment     *segment.Segment
	ParentStack []*segment.Segment // ancestors, root first
	Layout      reflow.Config
	Options     map[string]any
	Rebreaker   Rebreaker
}

// Root returns the top of the tree the segment belongs to.
func (c *RuleContext) Root() *segment.Segment {
	if len(c.ParentStack) > 0 {
		return c.ParentStack[0]
	}
	return c.Segment
}

// Parent returns the immediate parent of the segment, or nil at the root.
func (c *RuleContext) Parent() *segment.Segment {
	if len(c.ParentStack) == 0 {
		return nil
	}
	return c.ParentStack[len(c.ParentStack)-1]
}

func (c *RuleContext) rebreaker() Rebreaker {
	if c.Rebreaker != nil {
		return c.Rebreaker
	}
	return DefaultRebreaker
}

// Rebreak asks the configured rebreaker for the edits around target.
func (c *RuleContext) Rebreak(target *segment.Segment) ([]segment.Edit, error) {
	return c.rebreaker().Rebreak(target, c.Root(), c.Layout)
}
