package rules

import (
	"github.com/CommonCrisis/sqlfluff/pkg/lint"
	"github.com/CommonCrisis/sqlfluff/pkg/lint/rules/layout"
)

// All returns every built-in rule.
func All() []lint.SegmentRule {
	return []lint.SegmentRule{
		lint.WrapRuleDef(layout.SetOperators),
	}
}

// NewRegistry builds a registry holding every built-in rule.
func NewRegistry() (*lint.Registry, error) {
	return lint.NewRegistry(All()...)
}
