// Package score defines the scoring data model and the aggregation,
// grading, and recommendation logic shared by every claudepulse command.
package score

import "time"

// Status is the outcome of a single check.
type Status string

// Check outcomes.
const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// CheckResult is the smallest unit of evaluation: one pass/warn/fail
// judgment with earned and possible points and a human-readable message.
type CheckResult struct {
	Name      string `json:"name"`
	Status    Status `json:"status"`
	Points    int    `json:"points"`
	MaxPoints int    `json:"max_points"`
	Message   string `json:"message"`
}

// NewCheckResult builds a CheckResult with points clamped into
// [0, maxPoints] and maxPoints floored at zero, so a provider bug can
// never break the layer invariants downstream.
func NewCheckResult(name string, status Status, points, maxPoints int, message string) CheckResult {
	if maxPoints < 0 {
		maxPoints = 0
	}
	if points < 0 {
		points = 0
	}
	if points > maxPoints {
		points = maxPoints
	}
	return CheckResult{
		Name:      name,
		Status:    status,
		Points:    points,
		MaxPoints: maxPoints,
		Message:   message,
	}
}

// Layer is the output of one check provider: a named group of checks
// with precomputed point sums.
type Layer struct {
	Name      string        `json:"name"`
	Points    int           `json:"points"`
	MaxPoints int           `json:"max_points"`
	Checks    []CheckResult `json:"checks"`
}

// NewLayer builds a Layer whose point totals are the sums over its checks.
func NewLayer(name string, checks []CheckResult) Layer {
	l := Layer{Name: name, Checks: checks}
	for _, c := range checks {
		l.Points += c.Points
		l.MaxPoints += c.MaxPoints
	}
	return l
}

// Dimension names. The three dimensions use different grade vocabularies
// but identical threshold mechanics.
const (
	DimensionSetup   = "setup"
	DimensionUsage   = "usage"
	DimensionFluency = "fluency"
)

// Dimension aggregates the layers of one scoring dimension.
// NormalizedScore, Grade, and GradeLabel are strictly derived from
// (TotalPoints, MaxPoints) at construction time.
type Dimension struct {
	Name            string  `json:"name"`
	TotalPoints     int     `json:"total_points"`
	MaxPoints       int     `json:"max_points"`
	NormalizedScore int     `json:"normalized_score"`
	Grade           string  `json:"grade"`
	GradeLabel      string  `json:"grade_label"`
	Layers          []Layer `json:"layers"`
}

// Recommendation is a ranked fix suggestion derived from a non-passing check.
type Recommendation struct {
	Title       string `json:"title"`
	Impact      int    `json:"impact"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Report is the full result of one evaluation run across all three
// dimensions. It is immutable after construction.
type Report struct {
	Path      string           `json:"path"`
	Timestamp time.Time        `json:"timestamp"`
	RunID     string           `json:"run_id"`
	Setup     Dimension        `json:"setup"`
	Usage     Dimension        `json:"usage"`
	Fluency   Dimension        `json:"fluency"`
	TopFixes  []Recommendation `json:"top_fixes"`
}

// Dimensions returns the report's dimensions in canonical order.
func (r *Report) Dimensions() []Dimension {
	return []Dimension{r.Setup, r.Usage, r.Fluency}
}

// AllLayers returns every layer across all three dimensions, setup first.
func (r *Report) AllLayers() []Layer {
	var layers []Layer
	for _, d := range r.Dimensions() {
		layers = append(layers, d.Layers...)
	}
	return layers
}

// Overall returns the report-wide normalized score, computed from the
// summed points of all three dimensions rather than an average of their
// normalized scores, so dimensions with larger ceilings weigh more.
func (r *Report) Overall() int {
	points := r.Setup.TotalPoints + r.Usage.TotalPoints + r.Fluency.TotalPoints
	max := r.Setup.MaxPoints + r.Usage.MaxPoints + r.Fluency.MaxPoints
	return NormalizeScore(points, max)
}
