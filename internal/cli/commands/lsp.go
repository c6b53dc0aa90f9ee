package commands

import (
	"github.com/spf13/cobra"

	"github.com/CommonCrisis/sqlfluff/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC. It publishes
lint diagnostics for open SQL documents, offers their fixes as quick
fixes and formats documents with the same fix loop as "sqlfluff fix".
Rules are configured from .sqlfluff.yaml like the other commands.`,
		Example: `  # Start LSP server (usually called by an editor)
  sqlfluff lsp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd, "")
	if err != nil {
		return err
	}

	linter := cmdCtx.NewLinter(buildLintConfig(cmdCtx.Cfg, nil, nil))
	server := lsp.NewServerWithLogger(cmd.InOrStdin(), cmd.OutOrStdout(), linter, cmdCtx.Logger)
	if root := cmd.Root(); root != nil {
		server.SetVersion(root.Version)
	}
	return server.Run()
}
