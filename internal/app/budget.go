package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepulse/internal/budget"
	"github.com/blackwell-systems/claudepulse/internal/output"
)

var budgetCmd = &cobra.Command{
	Use:   "budget [path]",
	Short: "Estimate fixed context token costs",
	Long: `Estimate how many tokens each context surface consumes on every
request: the instruction file, memory, knowledge files, MCP tool
registrations, skills, settings, and fixed system overhead.

Surfaces over their comfortable size are flagged, and reduction
suggestions are ranked by recoverable tokens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, args []string) error {
	cfg, ws, err := resolveWorkspace(args)
	if err != nil {
		return err
	}

	breakdown := budget.Estimate(budget.InputsFromWorkspace(ws), cfg.ContextWindow)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(breakdown)
	}

	fmt.Println(output.Section(fmt.Sprintf("Context Budget — %s", ws.Root)))
	fmt.Println()
	fmt.Printf("  Fixed cost: %s of a %s token window (%d%%)\n\n",
		output.StyleBold.Render(fmt.Sprintf("%d tokens", breakdown.FixedTokens)),
		formatTokens(breakdown.WindowTokens),
		breakdown.FixedPercent)

	tbl := output.NewTable("Surface", "Tokens", "Detail", "")
	for _, s := range breakdown.Surfaces {
		flag := ""
		if s.Flagged {
			flag = output.StyleWarning.Render("over budget")
		}
		tbl.AddRow(s.Name, fmt.Sprintf("%d", s.Tokens), output.StyleMuted.Render(s.Detail), flag)
	}
	fmt.Print(indent(tbl.Render()))

	if len(breakdown.Suggestions) > 0 {
		fmt.Println(output.Section("Reduction Opportunities"))
		fmt.Println()
		for i, s := range breakdown.Suggestions {
			fmt.Printf("  %d. %s %s\n", i+1,
				output.StyleBold.Render(s.Title),
				output.StyleMuted.Render(fmt.Sprintf("(saves ~%d tokens, %s)", s.SavingsTokens, s.TimeCost)))
			fmt.Printf("     %s\n", s.Description)
		}
		fmt.Println()
		fmt.Printf("  Total recoverable: %s\n",
			output.StyleSuccess.Render(fmt.Sprintf("~%d tokens", breakdown.TotalRecoverable)))
	}
	fmt.Println()
	return nil
}

// formatTokens renders a window size like 200000 as "200k".
func formatTokens(n int) string {
	if n >= 1000 && n%1000 == 0 {
		return fmt.Sprintf("%dk", n/1000)
	}
	return fmt.Sprintf("%d", n)
}
