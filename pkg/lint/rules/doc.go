// Package rules provides the built-in lint rules.
//
// Rules are organized by category following SQLFluff's naming conventions:
//   - layout: Rules about line breaks and indentation (LT11)
//
// Build the default registry with NewRegistry:
//
//	registry, err := rules.NewRegistry()
//	linter := lint.NewLinter(registry, lint.NewConfig())
package rules
