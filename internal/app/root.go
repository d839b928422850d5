// Package app contains the Cobra command tree for claudepulse.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepulse/internal/claude"
	"github.com/blackwell-systems/claudepulse/internal/config"
	"github.com/blackwell-systems/claudepulse/internal/output"
	"github.com/blackwell-systems/claudepulse/internal/policy"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "claudepulse",
	Short: "Health scoring and trend tracking for Claude Code workspaces",
	Long: `claudepulse audits a Claude Code workspace's configuration: it scores
setup, usage, and fluency across graded layers, maps context engineering
pattern coverage, tracks improvement over time, and estimates the fixed
token cost of every context surface.

Run 'claudepulse check' in a workspace to get started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.AutoDetect()
		cfg, err := config.Load(flagConfig)
		if err != nil {
			cfg = nil
		}
		applyColorPreference(cfg)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("claudepulse", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  check     Score the workspace and record a run")
		fmt.Println("  pulse     Compare the latest run against history")
		fmt.Println("  fixes     Show the top ranked recommendations")
		fmt.Println("  patterns  Show context engineering pattern coverage")
		fmt.Println("  audit     Run configuration audit rules")
		fmt.Println("  budget    Estimate fixed context token costs")
		fmt.Println("  mcp       Run an MCP stdio server for use with Claude Code")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/claudepulse/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}

// applyColorPreference disables color when the config file or the
// --no-color flag asks for it. The flag wins over the config.
func applyColorPreference(cfg *config.Config) {
	if cfg != nil && !cfg.Output.Color {
		output.SetNoColor(true)
	}
	if flagNoColor {
		output.SetNoColor(true)
	}
}

// resolveWorkspace loads configuration, enforces the root boundary on the
// optional positional path argument, and reads the workspace.
func resolveWorkspace(args []string) (*config.Config, *claude.Workspace, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	pol, err := policy.Default()
	if err != nil {
		return nil, nil, err
	}

	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	root, err := pol.ResolveRoot(path)
	if err != nil {
		return nil, nil, err
	}

	ws, err := claude.LoadWorkspace(root, cfg.ClaudeHome)
	if err != nil {
		return nil, nil, err
	}
	return cfg, ws, nil
}
