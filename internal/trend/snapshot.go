// Package trend persists run snapshots in an append-only history and
// compares runs over time into a pulse of deltas, tier crossings, and
// improvement streaks.
package trend

import (
	"time"

	"github.com/blackwell-systems/claudepulse/internal/patterns"
	"github.com/blackwell-systems/claudepulse/internal/score"
)

// PatternScore is the compact per-pattern projection stored in history.
type PatternScore struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// RunSnapshot is a compact projection of one report, appended to the
// history file. A run never mutates a prior snapshot.
type RunSnapshot struct {
	Timestamp  time.Time      `json:"timestamp"`
	RunID      string         `json:"run_id,omitempty"`
	OverallPct int            `json:"overall_pct"`
	Setup      int            `json:"setup"`
	Usage      int            `json:"usage"`
	Fluency    int            `json:"fluency"`
	CEPatterns []PatternScore `json:"ce_patterns"`
}

// SnapshotFromReport projects a report into its history form.
func SnapshotFromReport(r *score.Report) RunSnapshot {
	snap := RunSnapshot{
		Timestamp:  r.Timestamp,
		RunID:      r.RunID,
		OverallPct: r.Overall(),
		Setup:      r.Setup.NormalizedScore,
		Usage:      r.Usage.NormalizedScore,
		Fluency:    r.Fluency.NormalizedScore,
	}
	for _, p := range patterns.MapReport(r) {
		snap.CEPatterns = append(snap.CEPatterns, PatternScore{
			ID:         p.ID,
			Name:       p.Name,
			Percentage: p.Percentage,
		})
	}
	return snap
}

// dimensionValue returns the snapshot's score for a dimension name.
func (s RunSnapshot) dimensionValue(dimension string) int {
	switch dimension {
	case score.DimensionSetup:
		return s.Setup
	case score.DimensionUsage:
		return s.Usage
	case score.DimensionFluency:
		return s.Fluency
	default:
		return s.OverallPct
	}
}
