package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/CommonCrisis/sqlfluff/pkg/lint"
	"github.com/CommonCrisis/sqlfluff/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"layout": "Rules about line breaks and whitespace between segments.",
}

// groupPrefixes maps rule groups to their ID prefix.
var groupPrefixes = map[string]string{
	"layout": "LT",
}

// generateLintDocs generates all lint documentation files.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	registry, err := rules.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to build rule registry: %w", err)
	}

	if err := generateLintIndex(outDir, registry); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	if err := generateRulesPage(outDir, registry); err != nil {
		return err
	}
	log.Printf("  Generated rules.md")

	return nil
}

// generateLintIndex generates the main linting overview page.
func generateLintIndex(outDir string, registry *lint.Registry) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Linting", "SQL layout lint rules for sqlfluff")
	w.GeneratedMarker()

	w.Header(1, "Linting")
	w.Paragraph(fmt.Sprintf("sqlfluff ships **%d rules**. Each rule has a stable ID and may also answer to legacy aliases.", registry.Count()))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Critical issue that should be fixed"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules can be configured in `.sqlfluff.yaml`. IDs and aliases are interchangeable:")
	w.CodeBlock("yaml", `lint:
  disabled: [L065]        # skip a rule
  severity:
    LT11: error           # override severity
layout:
  types:
    set_operator:
      line_position: alone  # alone, leading, trailing or none`)

	w.Header(2, "Rule Categories")
	var rows [][]string
	for _, group := range registry.Groups() {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/linting/rules#%s)", capitalizeFirst(group), group),
			groupPrefixes[group],
			groupDescriptions[group],
		})
	}
	w.Table([]string{"Category", "Prefix", "Description"}, rows)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateRulesPage documents every rule, grouped by category.
func generateRulesPage(outDir string, registry *lint.Registry) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Lint Rules", "Rule reference for sqlfluff")
	w.GeneratedMarker()

	w.Header(1, "Lint Rules")
	groups := registry.Groups()
	w.Paragraph(fmt.Sprintf("sqlfluff includes %d lint rules organized into %d categories.", registry.Count(), len(groups)))

	for _, group := range groups {
		// Write group header with anchor
		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(group), group))
		w.Newline()

		if desc, ok := groupDescriptions[group]; ok {
			w.Paragraph(desc)
		}

		for _, rule := range registry.ByGroup(group) {
			writeRuleDoc(w, rule)
		}
	}

	return os.WriteFile(filepath.Join(outDir, "rules.md"), w.Bytes(), 0600)
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.Rule) {
	// Rule header with anchor: ### LT11 - layout.set_operators {#LT11}
	w.Line(fmt.Sprintf("### %s - %s {#%s}", rule.ID(), rule.Name(), rule.ID()))
	w.Newline()

	w.Line(Bold("Severity:") + " " + InlineCode(rule.DefaultSeverity().String()))
	w.Newline()

	if aliases := rule.Aliases(); len(aliases) > 0 {
		codes := make([]string, len(aliases))
		for i, a := range aliases {
			codes[i] = InlineCode(a)
		}
		w.Line(Bold("Aliases:") + " " + strings.Join(codes, ", "))
		w.Newline()
	}

	w.Paragraph(cleanDescription(rule.Description()))

	if rationale := rule.Rationale(); rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(strings.TrimSpace(rationale))
	}

	if badExample := rule.BadExample(); badExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("sql", badExample)
	}

	if goodExample := rule.GoodExample(); goodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("sql", goodExample)
	}

	if fix := rule.Fix(); fix != "" {
		w.Header(4, "How to Fix")
		w.Paragraph(strings.TrimSpace(fix))
	}

	if configKeys := rule.ConfigKeys(); len(configKeys) > 0 {
		w.Header(4, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule reads the following configuration keys: %s",
			InlineCode(strings.Join(configKeys, ", "))))
	}

	// Horizontal rule between rules for readability
	w.Line("---")
	w.Newline()
}
