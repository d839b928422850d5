package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepulse/internal/checks"
	"github.com/blackwell-systems/claudepulse/internal/output"
)

var fixesCmd = &cobra.Command{
	Use:   "fixes [path]",
	Short: "Show the top ranked recommendations",
	Long: `Score the workspace and print only the ranked fix list: the five
non-passing checks whose deficit, normalized against their dimension's
ceiling, would move the score the most.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFixes,
}

func init() {
	rootCmd.AddCommand(fixesCmd)
}

func runFixes(cmd *cobra.Command, args []string) error {
	cfg, ws, err := resolveWorkspace(args)
	if err != nil {
		return err
	}

	report := checks.BuildReportWith(cmd.Context(), checks.DefaultProviders(), ws, cfg.TopFixCount)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report.TopFixes)
	}

	fmt.Println(output.Section(fmt.Sprintf("Top Fixes — %s", ws.Root)))
	fmt.Println()

	if len(report.TopFixes) == 0 {
		fmt.Printf("  %s\n\n", output.StyleSuccess.Render("Everything passes. Nothing to fix."))
		return nil
	}

	for i, fix := range report.TopFixes {
		fmt.Printf("  %d. %s %s\n", i+1,
			output.StyleBold.Render(fix.Title),
			output.StyleMuted.Render(fmt.Sprintf("(impact %d, %s)", fix.Impact, fix.Category)))
		if fix.Description != "" {
			fmt.Printf("     %s\n", fix.Description)
		}
	}
	fmt.Println()
	return nil
}
