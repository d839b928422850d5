package score

// GradeBand is one row of a grade threshold table. Bands are evaluated
// top-down; the first band whose MinPercent is at or below the normalized
// score wins. Every table must end with a MinPercent of 0 so no score
// falls through.
type GradeBand struct {
	MinPercent int
	Grade      string
	Label      string
}

// SetupGrades maps setup scores to letter grades.
var SetupGrades = []GradeBand{
	{85, "A", "Excellent"},
	{70, "B", "Good"},
	{50, "C", "Fair"},
	{30, "D", "Needs Work"},
	{0, "F", "Critical"},
}

// UsageGrades maps usage scores to activity grades.
var UsageGrades = []GradeBand{
	{85, "Active", "Daily driver"},
	{70, "Growing", "Regular use"},
	{50, "Starting", "Getting traction"},
	{30, "Dormant", "Fading"},
	{0, "Empty", "No signal"},
}

// FluencyGrades maps fluency scores to proficiency grades. The same table
// defines the tiers used for trend tier-crossing events.
var FluencyGrades = []GradeBand{
	{85, "Expert", "Advanced patterns in daily use"},
	{70, "Proficient", "Solid fundamentals"},
	{50, "Developing", "Building habits"},
	{30, "Beginner", "Early days"},
	{0, "Novice", "Just getting started"},
}

// gradeFor resolves a normalized score against a threshold table.
func gradeFor(table []GradeBand, normalized int) GradeBand {
	for _, band := range table {
		if normalized >= band.MinPercent {
			return band
		}
	}
	// Unreachable when the table ends at 0, but never return a null grade.
	return table[len(table)-1]
}

// GetSetupGrade grades raw setup points against the setup table.
func GetSetupGrade(points, maxPoints int) GradeBand {
	return gradeFor(SetupGrades, NormalizeScore(points, maxPoints))
}

// GetUsageGrade grades raw usage points against the usage table.
func GetUsageGrade(points, maxPoints int) GradeBand {
	return gradeFor(UsageGrades, NormalizeScore(points, maxPoints))
}

// GetFluencyGrade grades raw fluency points against the fluency table.
func GetFluencyGrade(points, maxPoints int) GradeBand {
	return gradeFor(FluencyGrades, NormalizeScore(points, maxPoints))
}

// TierFor returns the qualitative tier name for a percentage, using the
// fluency vocabulary. The trend engine uses this for tier-crossing events.
func TierFor(percentage int) string {
	return gradeFor(FluencyGrades, percentage).Grade
}

// GradeTable returns the threshold table for a dimension name.
func GradeTable(dimension string) []GradeBand {
	switch dimension {
	case DimensionUsage:
		return UsageGrades
	case DimensionFluency:
		return FluencyGrades
	default:
		return SetupGrades
	}
}
