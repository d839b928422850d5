package checks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/claudepulse/internal/claude"
	"github.com/blackwell-systems/claudepulse/internal/score"
)

// BuildReport runs all default providers against the workspace and
// aggregates their layers into a full report with the default fix count.
func BuildReport(ctx context.Context, ws *claude.Workspace) *score.Report {
	return BuildReportWith(ctx, DefaultProviders(), ws, score.DefaultTopFixCount)
}

// BuildReportWith is BuildReport with an explicit provider set and fix
// count, used by the commands (which carry the configured count) and by
// tests. A non-positive topFixCount falls back to the default.
func BuildReportWith(ctx context.Context, providers []Provider, ws *claude.Workspace, topFixCount int) *score.Report {
	if topFixCount <= 0 {
		topFixCount = score.DefaultTopFixCount
	}
	results := RunAll(ctx, providers, ws)

	r := &score.Report{
		Path:      ws.Root,
		Timestamp: time.Now().UTC(),
		RunID:     uuid.NewString(),
		Setup:     score.BuildDimension(score.DimensionSetup, results.Setup, score.GradeTable(score.DimensionSetup)),
		Usage:     score.BuildDimension(score.DimensionUsage, results.Usage, score.GradeTable(score.DimensionUsage)),
		Fluency:   score.BuildDimension(score.DimensionFluency, results.Fluency, score.GradeTable(score.DimensionFluency)),
	}
	r.TopFixes = score.TopFixes(r.Dimensions(), topFixCount)
	return r
}
