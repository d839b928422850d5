package store

import (
	"database/sql"
	"time"

	"github.com/blackwell-systems/claudepulse/internal/patterns"
	"github.com/blackwell-systems/claudepulse/internal/score"
)

// ArchiveReport inserts a full run record for a report: the run row,
// one row per dimension, and one row per pattern. The insert is
// transactional so a failed archive leaves no partial run behind.
func (db *DB) ArchiveReport(r *score.Report, pats []patterns.Pattern, version string) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"INSERT INTO runs (run_id, taken_at, root, overall_pct, version) VALUES (?, ?, ?, ?, ?)",
		r.RunID, r.Timestamp.UTC().Format(time.RFC3339), r.Path, r.Overall(), version,
	)
	if err != nil {
		return 0, err
	}
	rowID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, d := range r.Dimensions() {
		if _, err := tx.Exec(
			`INSERT INTO dimension_scores
			(run_rowid, dimension, points, max, percent, grade, label)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rowID, d.Name, d.TotalPoints, d.MaxPoints, d.NormalizedScore, d.Grade, d.GradeLabel,
		); err != nil {
			return 0, err
		}
	}

	for _, p := range pats {
		if _, err := tx.Exec(
			"INSERT INTO pattern_scores (run_rowid, pattern, name, percentage) VALUES (?, ?, ?, ?)",
			rowID, p.ID, p.Name, p.Percentage,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return rowID, nil
}

// GetLatestRun returns the most recent archived run for a workspace
// root, or nil if none exist.
func (db *DB) GetLatestRun(root string) (*Run, error) {
	row := db.conn.QueryRow(
		"SELECT id, run_id, taken_at, root, overall_pct, version FROM runs WHERE root = ? ORDER BY id DESC LIMIT 1",
		root,
	)
	return scanRun(row)
}

// ListRuns returns up to limit archived runs for a workspace root,
// newest first.
func (db *DB) ListRuns(root string, limit int) ([]Run, error) {
	rows, err := db.conn.Query(
		"SELECT id, run_id, taken_at, root, overall_pct, version FROM runs WHERE root = ? ORDER BY id DESC LIMIT ?",
		root, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var takenAt string
		if err := rows.Scan(&r.ID, &r.RunID, &takenAt, &r.Root, &r.OverallPct, &r.Version); err != nil {
			return nil, err
		}
		r.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func scanRun(row *sql.Row) (*Run, error) {
	var r Run
	var takenAt string
	err := row.Scan(&r.ID, &r.RunID, &takenAt, &r.Root, &r.OverallPct, &r.Version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &r, nil
}

// GetDimensions returns the archived dimension rows for a run.
func (db *DB) GetDimensions(runRowID int64) ([]DimensionRow, error) {
	rows, err := db.conn.Query(
		`SELECT id, run_rowid, dimension, points, max, percent, grade, label
		 FROM dimension_scores WHERE run_rowid = ?`,
		runRowID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var dims []DimensionRow
	for rows.Next() {
		var d DimensionRow
		if err := rows.Scan(&d.ID, &d.RunRowID, &d.Dimension, &d.Points, &d.Max, &d.Percent, &d.Grade, &d.Label); err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, rows.Err()
}

// GetPatterns returns the archived pattern rows for a run.
func (db *DB) GetPatterns(runRowID int64) ([]PatternRow, error) {
	rows, err := db.conn.Query(
		"SELECT id, run_rowid, pattern, name, percentage FROM pattern_scores WHERE run_rowid = ?",
		runRowID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var pats []PatternRow
	for rows.Next() {
		var p PatternRow
		if err := rows.Scan(&p.ID, &p.RunRowID, &p.Pattern, &p.Name, &p.Percentage); err != nil {
			return nil, err
		}
		pats = append(pats, p)
	}
	return pats, rows.Err()
}
