// Package lint provides the segment-level SQL linting framework.
//
// # Architecture
//
// The package holds the shared contracts and the engine that drives them:
//
//  1. Rules (Rule, SegmentRule, RuleDef): metadata plus an Eval function
//     invoked once per segment whose type the rule crawls.
//  2. Registry: an explicit type tag to rules mapping, built once at startup.
//  3. Linter: walks a parsed tree, dispatches segments to rules, converts
//     rule results into Diagnostics and runs the fix loop.
//
// Rule implementations live under pkg/lint/rules to keep this package free
// of concrete checks.
//
// # Using the Linter
//
//	registry, err := rules.NewRegistry()
//	if err != nil {
//	    return err
//	}
//	linter := lint.NewLinter(registry, lint.NewConfig())
//	diags, err := linter.LintString("SELECT 1 UNION SELECT 2")
//
// # Configuration
//
// Use Config to control which rules run, their severity and the layout the
// reflow subsystem enforces:
//
//	config := lint.NewConfig()
//	config.Disable("LT11")
//	config.SetSeverity("LT11", lint.SeverityError)
//	config.Layout.IndentUnit = reflow.IndentUnitTab
//
// # Creating Custom Rules
//
// Implement SegmentRule or use RuleDef:
//
//	var MyRule = lint.RuleDef{
//		ID:          "MY01",
//		Name:        "custom.my_rule",
//		Group:       "custom",
//		Description: "My custom rule description",
//		Severity:    lint.SeverityWarning,
//		CrawlTypes:  []string{segment.TypeKeyword},
//		Eval:        evalMyRule,
//	}
//
//	registry, err := lint.NewRegistry(lint.WrapRuleDef(MyRule))
package lint
