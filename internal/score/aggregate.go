package score

import "math"

// NormalizeScore converts raw points into a 0-100 score. A non-positive
// ceiling (no checks ran, or every check reported a zero ceiling) yields 0
// rather than a division error.
func NormalizeScore(points, maxPoints int) int {
	if maxPoints <= 0 {
		return 0
	}
	return int(math.Round(float64(points) / float64(maxPoints) * 100))
}

// BuildDimension aggregates the resolved layers of one dimension into
// totals, a normalized score, and a grade from the dimension's threshold
// table. Summation is commutative, so layer completion order never matters.
func BuildDimension(name string, layers []Layer, table []GradeBand) Dimension {
	d := Dimension{Name: name, Layers: layers}
	for _, l := range layers {
		d.TotalPoints += l.Points
		d.MaxPoints += l.MaxPoints
	}
	d.NormalizedScore = NormalizeScore(d.TotalPoints, d.MaxPoints)
	band := gradeFor(table, d.NormalizedScore)
	d.Grade = band.Grade
	d.GradeLabel = band.Label
	return d
}
