package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/CommonCrisis/sqlfluff/internal/cli"
)

// commandExitCodes documents the non-zero exits of commands that report
// findings through their exit status.
var commandExitCodes = map[string][][]string{
	"lint": {
		{InlineCode("0"), "No violations"},
		{InlineCode("1"), "Violations found or an error occurred (check stderr)"},
	},
	"fix": {
		{InlineCode("0"), "Every violation was fixed or none were found"},
		{InlineCode("1"), "Violations remain after fixing or an error occurred (check stderr)"},
	},
}

// generateCLIDocs generates CLI documentation from Cobra commands.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	commands := visibleCommands(rootCmd)

	if err := generateCLIIndex(rootCmd, commands, outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range commands {
		if err := generateCommandPage(cmd, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}

	return nil
}

// visibleCommands returns the subcommands a user can discover from help.
func visibleCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || !cmd.IsAvailableCommand() || cmd.Name() == "help" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// generateCLIIndex generates the CLI overview page.
func generateCLIIndex(rootCmd *cobra.Command, commands []*cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for sqlfluff")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("sqlfluff lints the layout of SQL files, fixes what it finds, prints parse trees and serves editors over LSP.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/CommonCrisis/sqlfluff/cmd/sqlfluff@latest")

	w.Header(2, "Basic Usage")
	w.CodeBlock("bash", "sqlfluff <command> [paths...] [options]")

	w.Header(2, "Commands")
	rows := make([][]string, 0, len(commands))
	for _, cmd := range commands {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Every scalar or list configuration key can be set from the environment. Prefix it with `SQLFLUFF_`, upper-case it and separate nested keys with `__`. Lists take comma-separated values.")
	w.Table([]string{"Variable", "Key", "Description"}, envRows())
	w.Paragraph("Settings are applied in order: defaults, `.sqlfluff.yaml`, environment, flags.")

	w.Header(2, "Getting Help")
	w.CodeBlock("bash", `sqlfluff --help
sqlfluff lint --help
sqlfluff rules LT11`)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// envRows lists the environment variable for each configuration key the
// env provider can express. Map-valued keys are left to the config file.
func envRows() [][]string {
	var rows [][]string
	for _, f := range getConfigSchema() {
		if strings.HasPrefix(f.Type, "map[") {
			continue
		}
		rows = append(rows, []string{InlineCode(envVarName(f.Name)), InlineCode(f.Name), f.Description})
	}
	return rows
}

// envVarName maps a dotted configuration key to its environment variable.
func envVarName(key string) string {
	return "SQLFLUFF_" + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}

// generateCommandPage generates documentation for a single command.
func generateCommandPage(cmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	description := cmd.Long
	if description == "" {
		description = cmd.Short
	}
	w.Paragraph(description)

	w.Header(2, "Usage")
	w.CodeBlock("bash", usageLine(cmd))

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	if codes, ok := commandExitCodes[cmd.Name()]; ok {
		w.Header(2, "Exit Status")
		w.Table([]string{"Code", "Meaning"}, codes)
	}

	return os.WriteFile(filepath.Join(outDir, cmd.Name()+".md"), w.Bytes(), 0600)
}

func usageLine(cmd *cobra.Command) string {
	line := cmd.UseLine()
	if !strings.HasPrefix(line, "sqlfluff") {
		line = "sqlfluff " + line
	}
	return line
}

// writeFlagsTable writes a table of flags.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		rows = append(rows, []string{
			InlineCode("--" + f.Name),
			short,
			flagDefault(f),
			cleanDescription(f.Usage),
		})
	})
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// flagDefault renders a flag default. Empty slices and strings show as
// blank, strings are quoted as code.
func flagDefault(f *pflag.Flag) string {
	switch def := f.DefValue; {
	case def == "" || def == "[]":
		return ""
	case f.Value.Type() == "string":
		return InlineCode(def)
	default:
		return def
	}
}

// cleanExample removes common leading whitespace from example text.
func cleanExample(example string) string {
	lines := strings.Split(strings.TrimRight(example, " \t\n"), "\n")

	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
