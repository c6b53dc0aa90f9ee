package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/CommonCrisis/sqlfluff/internal/cli/config"
	"github.com/CommonCrisis/sqlfluff/pkg/reflow"
)

// generateSchemaDocs generates the configuration file reference.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	// Create output directory
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "general", "lint", "layout"
}

// getConfigSchema returns the configuration schema definition. Defaults
// come from the config and reflow packages so the page cannot drift.
func getConfigSchema() []ConfigField {
	layout := reflow.DefaultConfig()

	fields := []ConfigField{
		{Name: "verbose", Type: "bool", Default: "false", Description: "Enable debug logging", Category: "general"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: auto, text, markdown, json, table", Category: "general"},
		{Name: "max_loops", Type: "int", Default: strconv.Itoa(config.DefaultMaxLoops), Description: "Lint/fix passes per file before fix gives up", Category: "general"},
		{Name: "processes", Type: "int", Default: strconv.Itoa(config.DefaultProcesses), Description: "Files processed in parallel; 0 or less counts back from the CPU count", Category: "general"},

		{Name: "lint.disabled", Type: "[]string", Description: "Rule IDs or aliases to skip", Category: "lint"},
		{Name: "lint.only", Type: "[]string", Description: "When set, run only these rules", Category: "lint"},
		{Name: "lint.severity", Type: "map[string]string", Description: "Severity override per rule ID or alias", Category: "lint"},
		{Name: "lint.rules", Type: "map[string]map[string]any", Description: "Rule-specific options per rule ID", Category: "lint"},

		{Name: "layout.indent_unit", Type: "string", Default: layout.IndentUnit, Description: "Indent unit used by layout fixes: space or tab", Category: "layout"},
		{Name: "layout.tab_space_size", Type: "int", Default: strconv.Itoa(layout.TabSpaceSize), Description: "Columns per indent level", Category: "layout"},
	}

	types := make([]string, 0, len(layout.Types))
	for typ := range layout.Types {
		types = append(types, typ)
	}
	slices.Sort(types)
	for _, typ := range types {
		fields = append(fields, ConfigField{
			Name:        "layout.types." + typ + ".line_position",
			Type:        "string",
			Default:     string(layout.Types[typ].LinePosition),
			Description: fmt.Sprintf("Where line breaks belong around %s segments: alone, leading, trailing or none", typ),
			Category:    "layout",
		})
	}
	return fields
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	// Frontmatter
	w.Frontmatter("Configuration", "sqlfluff configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("sqlfluff reads `.sqlfluff.yaml` (or `.sqlfluff.yml`) from the working directory or the nearest parent directory. Use `--config` to point at another file.")

	fields := getConfigSchema()
	sections := []struct {
		category string
		title    string
		intro    string
	}{
		{"general", "General Settings", "Settings shared by every command:"},
		{"lint", "Lint Settings", "Rule selection and severity, under the `lint` key:"},
		{"layout", "Layout Settings", "Settings used when rules compute layout fixes, under the `layout` key:"},
	}

	headers := []string{"Field", "Type", "Default", "Description"}
	for _, section := range sections {
		w.Header(2, section.title)
		w.Paragraph(section.intro)

		var rows [][]string
		for _, f := range fields {
			if f.Category != section.category {
				continue
			}
			defVal := f.Default
			if defVal == "" {
				defVal = "-"
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Type, InlineCode(defVal), f.Description})
		}
		w.Table(headers, rows)
	}

	w.Header(2, "Example")
	w.CodeBlock("yaml", `output: markdown
processes: 4
lint:
  only: [LT11]
  severity:
    LT11: error
layout:
  indent_unit: space
  types:
    set_operator:
      line_position: alone`)

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Built-in defaults",
		"The configuration file",
		"`SQLFLUFF_*` environment variables (`__` separates nested keys)",
		"Command-line flags",
	})

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
