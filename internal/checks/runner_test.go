package checks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/claudepulse/internal/claude"
	"github.com/blackwell-systems/claudepulse/internal/score"
)

func staticProvider(name, dimension string, points, max int) Provider {
	return Provider{
		Name:      name,
		Dimension: dimension,
		Run: func(ws *claude.Workspace) score.Layer {
			return score.NewLayer(name, []score.CheckResult{
				score.NewCheckResult(name, score.StatusPass, points, max, ""),
			})
		},
	}
}

func TestRunAllGroupsByDimensionInOrder(t *testing.T) {
	providers := []Provider{
		staticProvider("a", score.DimensionSetup, 1, 1),
		staticProvider("b", score.DimensionUsage, 2, 2),
		staticProvider("c", score.DimensionSetup, 3, 3),
		staticProvider("d", score.DimensionFluency, 4, 4),
	}

	res := RunAll(context.Background(), providers, &claude.Workspace{})
	require.Len(t, res.Setup, 2)
	require.Len(t, res.Usage, 1)
	require.Len(t, res.Fluency, 1)
	// Registration order survives concurrent execution.
	assert.Equal(t, "a", res.Setup[0].Name)
	assert.Equal(t, "c", res.Setup[1].Name)
}

func TestRunAllIsolatesPanickingProvider(t *testing.T) {
	providers := []Provider{
		staticProvider("healthy", score.DimensionSetup, 5, 5),
		{
			Name:      "Exploding",
			Dimension: score.DimensionSetup,
			Run: func(ws *claude.Workspace) score.Layer {
				panic("boom")
			},
		},
	}

	res := RunAll(context.Background(), providers, &claude.Workspace{})
	require.Len(t, res.Setup, 2)

	// The healthy sibling is untouched.
	assert.Equal(t, 5, res.Setup[0].Points)

	// The panicking provider degrades to a zero-point failing layer.
	failed := res.Setup[1]
	assert.Equal(t, "Exploding", failed.Name)
	assert.Equal(t, 0, failed.Points)
	require.Len(t, failed.Checks, 1)
	assert.Equal(t, score.StatusFail, failed.Checks[0].Status)
	assert.Contains(t, failed.Checks[0].Message, "panicked")
}

func TestFailedLayerShape(t *testing.T) {
	l := FailedLayer("Skills", errors.New("timed out"))
	assert.Equal(t, "Skills", l.Name)
	assert.Equal(t, 0, l.Points)
	assert.Equal(t, 1, l.MaxPoints)
	assert.Equal(t, "timed out", l.Checks[0].Message)
}

func TestBuildReportInvariantsHold(t *testing.T) {
	root := t.TempDir()
	ws, err := claude.LoadWorkspace(root, "")
	require.NoError(t, err)

	r := BuildReport(context.Background(), ws)
	require.NotEmpty(t, r.RunID)
	assert.Equal(t, root, r.Path)

	for _, d := range r.Dimensions() {
		points, max := 0, 0
		for _, l := range d.Layers {
			points += l.Points
			max += l.MaxPoints
			assert.LessOrEqual(t, l.Points, l.MaxPoints)
		}
		assert.Equal(t, d.TotalPoints, points)
		assert.Equal(t, d.MaxPoints, max)
		assert.Equal(t, score.NormalizeScore(points, max), d.NormalizedScore)
		assert.NotEmpty(t, d.Grade)
	}

	assert.LessOrEqual(t, len(r.TopFixes), score.DefaultTopFixCount)
	for _, fix := range r.TopFixes {
		assert.NotEmpty(t, fix.Title)
		assert.NotEmpty(t, fix.Category)
	}
}

func TestDefaultProvidersCoverAllDimensions(t *testing.T) {
	dims := map[string]int{}
	for _, p := range DefaultProviders() {
		dims[p.Dimension]++
	}
	assert.Positive(t, dims[score.DimensionSetup])
	assert.Positive(t, dims[score.DimensionUsage])
	assert.Positive(t, dims[score.DimensionFluency])
}

func TestProvidersOnEmptyWorkspaceScoreZeroish(t *testing.T) {
	root := t.TempDir()
	ws, err := claude.LoadWorkspace(root, "")
	require.NoError(t, err)

	r := BuildReport(context.Background(), ws)
	assert.Equal(t, "F", r.Setup.Grade)
	assert.Equal(t, "Empty", r.Usage.Grade)
	assert.Equal(t, "Novice", r.Fluency.Grade)
	// An empty workspace still yields a full recommendation list.
	assert.Len(t, r.TopFixes, score.DefaultTopFixCount)
}

func TestBuildReportWithHonorsTopFixCount(t *testing.T) {
	root := t.TempDir()
	ws, err := claude.LoadWorkspace(root, "")
	require.NoError(t, err)

	r := BuildReportWith(context.Background(), DefaultProviders(), ws, 2)
	assert.Len(t, r.TopFixes, 2)

	// Non-positive counts fall back to the default.
	r = BuildReportWith(context.Background(), DefaultProviders(), ws, 0)
	assert.Len(t, r.TopFixes, score.DefaultTopFixCount)
}
