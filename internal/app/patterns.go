package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepulse/internal/checks"
	"github.com/blackwell-systems/claudepulse/internal/output"
	"github.com/blackwell-systems/claudepulse/internal/patterns"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns [path]",
	Short: "Show context engineering pattern coverage",
	Long: `Map the workspace's layer scores onto the seven context engineering
patterns and show coverage for each, with a hint for the weakest ones.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPatterns,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	_, ws, err := resolveWorkspace(args)
	if err != nil {
		return err
	}

	report := checks.BuildReport(cmd.Context(), ws)
	pats := patterns.MapReport(report)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pats)
	}

	fmt.Println(output.Section(fmt.Sprintf("Pattern Coverage — %s", ws.Root)))
	fmt.Println()
	renderPatterns(pats)

	for _, p := range pats {
		if p.Percentage >= 50 {
			continue
		}
		fmt.Printf("\n  %s %s\n", output.StyleBold.Render(p.Name+":"),
			patterns.HintFor(p.ID))
	}
	fmt.Println()
	return nil
}
