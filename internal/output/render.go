package output

import (
	"fmt"
	"strings"
)

// ScoreBar renders a visual progress bar for a 0-100 percentage.
// Example: "████████████████░░░░ 80/100"
func ScoreBar(percent, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var styled string
	switch {
	case percent >= 70:
		styled = StyleSuccess.Render(bar)
	case percent >= 40:
		styled = StyleWarning.Render(bar)
	default:
		styled = StyleError.Render(bar)
	}

	return fmt.Sprintf("%s %s", styled, StyleMuted.Render(fmt.Sprintf("%d/100", percent)))
}

// TrendArrow returns a styled indicator for a percentage-point delta.
// Positive deltas show an up arrow, negative show down, zero shows a dash.
func TrendArrow(delta int) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}
	if delta > 0 {
		return StyleSuccess.Render(fmt.Sprintf("▲ +%d", delta))
	}
	return StyleError.Render(fmt.Sprintf("▼ %d", delta))
}

// GradeBadge returns a styled grade with its label, colored by how
// good the grade's band is.
func GradeBadge(grade, label string, percent int) string {
	badge := fmt.Sprintf("%s (%s)", grade, label)
	switch {
	case percent >= 70:
		return StyleSuccess.Render(badge)
	case percent >= 40:
		return StyleWarning.Render(badge)
	default:
		return StyleError.Render(badge)
	}
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
