package store

import "time"

// Run is one archived evaluation run.
type Run struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	TakenAt    time.Time `json:"taken_at"`
	Root       string    `json:"root"`
	OverallPct int       `json:"overall_pct"`
	Version    string    `json:"version"`
}

// DimensionRow is an archived per-dimension score.
type DimensionRow struct {
	ID        int64  `json:"id"`
	RunRowID  int64  `json:"run_rowid"`
	Dimension string `json:"dimension"`
	Points    int    `json:"points"`
	Max       int    `json:"max"`
	Percent   int    `json:"percent"`
	Grade     string `json:"grade"`
	Label     string `json:"label"`
}

// PatternRow is an archived per-pattern percentage.
type PatternRow struct {
	ID         int64  `json:"id"`
	RunRowID   int64  `json:"run_rowid"`
	Pattern    string `json:"pattern"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}
