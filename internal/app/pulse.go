package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepulse/internal/config"
	"github.com/blackwell-systems/claudepulse/internal/output"
	"github.com/blackwell-systems/claudepulse/internal/policy"
	"github.com/blackwell-systems/claudepulse/internal/store"
	"github.com/blackwell-systems/claudepulse/internal/trend"
)

var (
	flagPeriod  string
	flagHistory int
)

var pulseCmd = &cobra.Command{
	Use:   "pulse [path]",
	Short: "Compare the latest run against history",
	Long: `Compute the trend pulse for a workspace: score deltas per dimension,
pattern movement, tier crossings, and improvement streaks.

The comparison point depends on --period:
  since_last  the run before the latest (default)
  7d          the newest run at least 7 days older than now
  30d         the newest run at least 30 days older than now

Use --history N to list the last N archived runs instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPulse,
}

func init() {
	pulseCmd.Flags().StringVar(&flagPeriod, "period", "since_last", "Comparison period: since_last, 7d, or 30d")
	pulseCmd.Flags().IntVar(&flagHistory, "history", 0, "List the last N archived runs instead of a pulse")
	rootCmd.AddCommand(pulseCmd)
}

func runPulse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	pol, err := policy.Default()
	if err != nil {
		return err
	}
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	root, err := pol.ResolveRoot(path)
	if err != nil {
		return err
	}

	if flagHistory > 0 {
		return runHistoryList(root, flagHistory)
	}

	period, err := trend.ParsePeriod(flagPeriod)
	if err != nil {
		return err
	}

	history, err := trend.NewHistory(cfg.HistoryPath(root)).Load()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	pulse := trend.ComputePulse(history, period, time.Now().UTC())

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pulse)
	}

	renderPulse(root, pulse)
	return nil
}

// runHistoryList prints the last n archived runs from the SQLite archive.
func runHistoryList(root string, n int) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(root, n)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No archived runs for this workspace. Run 'claudepulse check' first.")
		return nil
	}

	fmt.Println(output.Section(fmt.Sprintf("Archived Runs — %s", root)))
	fmt.Println()
	tbl := output.NewTable("When", "Overall", "Run")
	for _, r := range runs {
		tbl.AddRow(
			r.TakenAt.Local().Format("2006-01-02 15:04"),
			output.ScoreBar(r.OverallPct, 16),
			output.StyleMuted.Render(shortID(r.RunID)),
		)
	}
	fmt.Print(indent(tbl.Render()))
	fmt.Println()
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func renderPulse(root string, pulse *trend.Pulse) {
	fmt.Println(output.Section(fmt.Sprintf("Pulse — %s", root)))
	fmt.Println()

	if pulse.FirstRun {
		fmt.Println("  First run recorded. Run 'claudepulse check' again later to see trends.")
		fmt.Println()
		return
	}

	fmt.Printf("  Comparing against %s (%s)\n\n",
		pulse.Comparison.Timestamp.Local().Format("2006-01-02"),
		pulse.Period)

	tbl := output.NewTable("Metric", "Previous", "Current", "Trend")
	tbl.AddRow("Overall",
		fmt.Sprintf("%d", pulse.Overall.Previous),
		fmt.Sprintf("%d", pulse.Overall.Current),
		output.TrendArrow(pulse.Overall.Diff))
	for _, d := range pulse.Dimensions {
		tbl.AddRow(titleCase(d.Name),
			fmt.Sprintf("%d", d.Previous),
			fmt.Sprintf("%d", d.Current),
			output.TrendArrow(d.Diff))
	}
	fmt.Print(indent(tbl.Render()))

	if len(pulse.Events) > 0 {
		fmt.Println(output.Section("Events"))
		fmt.Println()
		for _, e := range pulse.Events {
			switch e.Type {
			case trend.EventTierDropped:
				fmt.Printf("  %s %s\n", output.StyleError.Render("▼"), e.Message)
			default:
				fmt.Printf("  %s %s\n", output.StyleSuccess.Render("▲"), e.Message)
			}
		}
	}

	if len(pulse.Patterns) > 0 {
		fmt.Println(output.Section("Pattern Movement"))
		fmt.Println()
		ptbl := output.NewTable("Pattern", "Previous", "Current", "Trend")
		for _, p := range pulse.Patterns {
			prev := fmt.Sprintf("%d%%", p.Previous)
			if p.NewlyObserved {
				prev = output.StyleMuted.Render("new")
			}
			ptbl.AddRow(p.Name, prev, fmt.Sprintf("%d%%", p.Current), output.TrendArrow(p.Diff))
		}
		fmt.Print(indent(ptbl.Render()))
	}

	if pulse.Suggestion != nil {
		fmt.Println(output.Section("Focus Next"))
		fmt.Println()
		fmt.Printf("  %s %s\n", output.StyleBold.Render(pulse.Suggestion.Name),
			output.StyleMuted.Render(fmt.Sprintf("(%d%%)", pulse.Suggestion.Percentage)))
		fmt.Printf("  %s\n", pulse.Suggestion.Hint)
	}
	fmt.Println()
}
