package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepulse/internal/checks"
	"github.com/blackwell-systems/claudepulse/internal/config"
	"github.com/blackwell-systems/claudepulse/internal/output"
	"github.com/blackwell-systems/claudepulse/internal/patterns"
	"github.com/blackwell-systems/claudepulse/internal/score"
	"github.com/blackwell-systems/claudepulse/internal/store"
	"github.com/blackwell-systems/claudepulse/internal/trend"
)

var flagNoRecord bool

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Score the workspace and record a run",
	Long: `Evaluate the workspace across the setup, usage, and fluency dimensions.
Each dimension is scored by its check layers, graded on its own scale,
and the five highest-impact fixes are ranked by normalized deficit.

Every run is appended to the workspace's history file and archived in
the SQLite database, unless --no-record is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not append this run to history")
	rootCmd.AddCommand(checkCmd)
}

// checkOutput is the JSON-serializable result of the check command.
type checkOutput struct {
	Report   *score.Report      `json:"report"`
	Overall  int                `json:"overall"`
	Patterns []patterns.Pattern `json:"patterns"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, ws, err := resolveWorkspace(args)
	if err != nil {
		return err
	}

	report := checks.BuildReportWith(cmd.Context(), checks.DefaultProviders(), ws, cfg.TopFixCount)
	pats := patterns.MapReport(report)

	if !flagNoRecord {
		recordRun(cfg, report, pats)
	}

	if flagJSON {
		out := checkOutput{
			Report:   report,
			Overall:  report.Overall(),
			Patterns: pats,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	renderReport(report, pats)
	return nil
}

// recordRun appends the run to the JSON history and the SQLite archive.
// Recording failures never fail the check itself; the report was already
// computed and the user should see it.
func recordRun(cfg *config.Config, report *score.Report, pats []patterns.Pattern) {
	snap := trend.SnapshotFromReport(report)
	if err := trend.NewHistory(cfg.HistoryPath(report.Path)).Append(snap); err != nil {
		fmt.Fprintln(os.Stderr, "warning: recording history:", err)
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		if flagVerbose {
			fmt.Fprintln(os.Stderr, "warning: opening archive:", err)
		}
		return
	}
	defer db.Close()
	if _, err := db.ArchiveReport(report, pats, appVersion); err != nil && flagVerbose {
		fmt.Fprintln(os.Stderr, "warning: archiving run:", err)
	}
}

func renderReport(report *score.Report, pats []patterns.Pattern) {
	fmt.Println(output.Section(fmt.Sprintf("Workspace Health — %s", report.Path)))
	fmt.Println()
	fmt.Printf("  Overall  %s\n", output.ScoreBar(report.Overall(), 24))

	for _, dim := range report.Dimensions() {
		renderDimension(dim)
	}

	if len(report.TopFixes) > 0 {
		fmt.Println(output.Section("Top Fixes"))
		fmt.Println()
		for i, fix := range report.TopFixes {
			fmt.Printf("  %d. %s %s\n", i+1,
				output.StyleBold.Render(fix.Title),
				output.StyleMuted.Render(fmt.Sprintf("(impact %d, %s)", fix.Impact, fix.Category)))
			if fix.Description != "" {
				fmt.Printf("     %s\n", fix.Description)
			}
		}
	}

	fmt.Println(output.Section("Pattern Coverage"))
	fmt.Println()
	renderPatterns(pats)
	fmt.Println()
}

func renderDimension(dim score.Dimension) {
	title := fmt.Sprintf("%s — %s", titleCase(dim.Name),
		output.GradeBadge(dim.Grade, dim.GradeLabel, dim.NormalizedScore))
	fmt.Println(output.Section(title))
	fmt.Println()
	fmt.Printf("  %s\n\n", output.ScoreBar(dim.NormalizedScore, 24))

	tbl := output.NewTable("Layer", "Points", "Checks")
	for _, layer := range dim.Layers {
		tbl.AddRow(
			layer.Name,
			fmt.Sprintf("%d/%d", layer.Points, layer.MaxPoints),
			summarizeChecks(layer),
		)
	}
	fmt.Print(indent(tbl.Render()))
}

// summarizeChecks condenses a layer's checks into pass/warn/fail counts.
func summarizeChecks(layer score.Layer) string {
	var pass, warn, fail int
	for _, c := range layer.Checks {
		switch c.Status {
		case score.StatusPass:
			pass++
		case score.StatusWarn:
			warn++
		default:
			fail++
		}
	}
	return fmt.Sprintf("%d pass, %d warn, %d fail", pass, warn, fail)
}

func renderPatterns(pats []patterns.Pattern) {
	tbl := output.NewTable("Pattern", "Coverage")
	for _, p := range pats {
		tbl.AddRow(p.Name, output.ScoreBar(p.Percentage, 16))
	}
	fmt.Print(indent(tbl.Render()))
}

// indent prefixes every non-empty line with two spaces.
func indent(s string) string {
	out := ""
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			line := s[start:i]
			if line != "" {
				out += "  " + line
			}
			out += "\n"
			start = i + 1
		}
	}
	if start < len(s) {
		out += "  " + s[start:]
	}
	return out
}

// titleCase uppercases the first byte of an ASCII dimension name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-32) + s[1:]
	}
	return s
}
