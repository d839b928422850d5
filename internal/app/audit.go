package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepulse/internal/audit"
	"github.com/blackwell-systems/claudepulse/internal/output"
)

var flagCategories []string

var auditCmd = &cobra.Command{
	Use:   "audit [path]",
	Short: "Run configuration audit rules",
	Long: `Inspect the workspace configuration for concrete problems:

  references    @-references in CLAUDE.md that do not resolve
  conflicts     permission rules and hooks that contradict each other
  security      wildcard allows and risky hook commands
  unused        skills and agents that nothing mentions
  performance   oversized instruction, memory, and MCP surfaces

Findings are sorted errors first, then warnings, then info.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringSliceVar(&flagCategories, "category", nil, "Rule categories to run (default: all)")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	_, ws, err := resolveWorkspace(args)
	if err != nil {
		return err
	}

	findings := audit.Run(ws, flagCategories)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(findings)
	}

	fmt.Println(output.Section(fmt.Sprintf("Audit — %s", ws.Root)))
	fmt.Println()

	if len(findings) == 0 {
		fmt.Printf("  %s\n\n", output.StyleSuccess.Render("No findings."))
		return nil
	}

	for _, f := range findings {
		fmt.Printf("  %s %s %s\n",
			severityBadge(f.Severity),
			output.StyleMuted.Render(fmt.Sprintf("[%s]", f.Category)),
			f.Message)
	}
	fmt.Println()
	fmt.Printf("  %s\n\n", output.StyleMuted.Render(fmt.Sprintf("%d finding(s)", len(findings))))
	return nil
}

func severityBadge(severity string) string {
	switch severity {
	case audit.SeverityError:
		return output.StyleError.Render("error  ")
	case audit.SeverityWarning:
		return output.StyleWarning.Render("warning")
	default:
		return output.StyleMuted.Render("info   ")
	}
}
