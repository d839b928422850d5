package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepulse/internal/config"
	"github.com/blackwell-systems/claudepulse/internal/mcp"
	"github.com/blackwell-systems/claudepulse/internal/policy"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server for use with Claude Code",
	Long: `Start a Model Context Protocol stdio server that Claude Code can
query during a session. The server exposes four tools:

  check_health      Score the workspace with graded layers and top fixes
  weekly_pulse      Trend deltas, tier crossings, and streaks
  audit_config      Configuration audit findings
  context_pressure  Fixed token costs per context surface

Add to your Claude Code MCP configuration (.mcp.json):
  {"mcpServers":{"claudepulse":{"command":"claudepulse","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	pol, err := policy.Default()
	if err != nil {
		return err
	}
	srv := mcp.NewServer(cfg, pol, appVersion)
	return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
}
