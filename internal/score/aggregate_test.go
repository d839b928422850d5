package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name      string
		points    int
		maxPoints int
		want      int
	}{
		{"zero over zero", 0, 0, 0},
		{"points with zero ceiling", 10, 0, 0},
		{"negative ceiling", 10, -5, 0},
		{"one third rounds to 33", 1, 3, 33},
		{"two thirds rounds to 67", 2, 3, 67},
		{"full marks", 50, 50, 100},
		{"half marks", 25, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeScore(tt.points, tt.maxPoints))
		})
	}
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		points int
		max    int
		grade  string
	}{
		{85, 100, "A"},
		{84, 100, "B"},
		{70, 100, "B"},
		{69, 100, "C"},
		{50, 100, "C"},
		{49, 100, "D"},
		{30, 100, "D"},
		{10, 100, "F"},
		{0, 0, "F"},
	}
	for _, tt := range tests {
		got := GetSetupGrade(tt.points, tt.max)
		assert.Equal(t, tt.grade, got.Grade, "setup %d/%d", tt.points, tt.max)
	}
}

func TestUsageAndFluencyGrades(t *testing.T) {
	assert.Equal(t, "Active", GetUsageGrade(90, 100).Grade)
	assert.Equal(t, "Growing", GetUsageGrade(70, 100).Grade)
	assert.Equal(t, "Empty", GetUsageGrade(5, 100).Grade)
	assert.Equal(t, "Empty", GetUsageGrade(0, 0).Grade)

	assert.Equal(t, "Expert", GetFluencyGrade(90, 100).Grade)
	assert.Equal(t, "Developing", GetFluencyGrade(50, 100).Grade)
	assert.Equal(t, "Novice", GetFluencyGrade(10, 100).Grade)
	assert.Equal(t, "Novice", GetFluencyGrade(0, 0).Grade)
}

// A strictly higher percentage must never yield a lower-ranked grade.
func TestGradeMonotonicity(t *testing.T) {
	for _, table := range [][]GradeBand{SetupGrades, UsageGrades, FluencyGrades} {
		rank := func(grade string) int {
			for i, band := range table {
				if band.Grade == grade {
					return len(table) - i
				}
			}
			return 0
		}
		prev := 0
		for pct := 0; pct <= 100; pct++ {
			r := rank(gradeFor(table, pct).Grade)
			assert.GreaterOrEqual(t, r, prev, "grade rank dropped at %d%%", pct)
			prev = r
		}
	}
}

func TestGradeTableEndsAtZero(t *testing.T) {
	for _, table := range [][]GradeBand{SetupGrades, UsageGrades, FluencyGrades} {
		require.NotEmpty(t, table)
		assert.Equal(t, 0, table[len(table)-1].MinPercent)
	}
}

func TestNewCheckResultClamps(t *testing.T) {
	c := NewCheckResult("x", StatusFail, -3, 10, "")
	assert.Equal(t, 0, c.Points)

	c = NewCheckResult("x", StatusPass, 12, 10, "")
	assert.Equal(t, 10, c.Points)

	c = NewCheckResult("x", StatusFail, 5, -1, "")
	assert.Equal(t, 0, c.MaxPoints)
	assert.Equal(t, 0, c.Points)
}

func TestBuildDimensionSums(t *testing.T) {
	layers := []Layer{
		NewLayer("Instructions", []CheckResult{
			NewCheckResult("a", StatusPass, 8, 10, ""),
			NewCheckResult("b", StatusWarn, 2, 5, ""),
		}),
		NewLayer("Skills", []CheckResult{
			NewCheckResult("c", StatusFail, 0, 5, ""),
		}),
	}

	d := BuildDimension(DimensionSetup, layers, SetupGrades)
	assert.Equal(t, 10, d.TotalPoints)
	assert.Equal(t, 20, d.MaxPoints)
	assert.Equal(t, 50, d.NormalizedScore)
	assert.Equal(t, "C", d.Grade)

	// Totals must reconcile with the layer sums exactly.
	points, max := 0, 0
	for _, l := range d.Layers {
		points += l.Points
		max += l.MaxPoints
	}
	assert.Equal(t, d.TotalPoints, points)
	assert.Equal(t, d.MaxPoints, max)
}

func TestBuildDimensionEmpty(t *testing.T) {
	d := BuildDimension(DimensionUsage, nil, UsageGrades)
	assert.Equal(t, 0, d.NormalizedScore)
	assert.Equal(t, "Empty", d.Grade)
	assert.NotEmpty(t, d.GradeLabel)
}

func TestReportOverallWeighsByCeiling(t *testing.T) {
	r := Report{
		Setup: BuildDimension(DimensionSetup, []Layer{
			NewLayer("Instructions", []CheckResult{NewCheckResult("a", StatusPass, 90, 90, "")}),
		}, SetupGrades),
		Usage: BuildDimension(DimensionUsage, []Layer{
			NewLayer("Session Activity", []CheckResult{NewCheckResult("b", StatusFail, 0, 10, "")}),
		}, UsageGrades),
		Fluency: BuildDimension(DimensionFluency, nil, FluencyGrades),
	}
	// 90 of 100 total points, not the mean of 100/0/0.
	assert.Equal(t, 90, r.Overall())
}
