package trend

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/claudepulse/internal/patterns"
	"github.com/blackwell-systems/claudepulse/internal/score"
)

// Period selects which historical snapshot the latest run is compared to.
type Period string

// Comparison periods.
const (
	PeriodSinceLast Period = "since_last"
	PeriodWeek      Period = "7d"
	PeriodMonth     Period = "30d"
)

// ParsePeriod validates a period string, defaulting to since_last.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodSinceLast, "":
		return PeriodSinceLast, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("invalid period %q (want since_last, 7d, or 30d)", s)
	}
}

// Trend directions.
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionStable = "stable"
)

// Delta is the change in one metric between the comparison and latest runs.
type Delta struct {
	Name      string `json:"name"`
	Previous  int    `json:"previous"`
	Current   int    `json:"current"`
	Diff      int    `json:"diff"`
	Direction string `json:"direction"`
}

// PatternDelta is the change in one CE pattern between two runs. A pattern
// absent from the comparison snapshot is newly observed, not a regression.
type PatternDelta struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Previous      int    `json:"previous"`
	Current       int    `json:"current"`
	Diff          int    `json:"diff"`
	NewlyObserved bool   `json:"newly_observed,omitempty"`
}

// Event kinds surfaced by the pulse.
const (
	EventTierEntered = "tier_entered"
	EventTierDropped = "tier_dropped"
	EventStreak      = "streak"
)

// Event is a notable change between runs: a tier crossing or a streak.
type Event struct {
	Type      string `json:"type"`
	Dimension string `json:"dimension"`
	Message   string `json:"message"`
}

// Suggestion points at the weakest stagnant pattern with a fixed hint.
type Suggestion struct {
	PatternID  string `json:"pattern_id"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Hint       string `json:"hint"`
}

// Pulse is the full trend summary for one comparison.
type Pulse struct {
	FirstRun   bool           `json:"first_run"`
	Period     Period         `json:"period"`
	Latest     *RunSnapshot   `json:"latest,omitempty"`
	Comparison *RunSnapshot   `json:"comparison,omitempty"`
	Overall    Delta          `json:"overall"`
	Dimensions []Delta        `json:"dimensions,omitempty"`
	Patterns   []PatternDelta `json:"patterns,omitempty"`
	Events     []Event        `json:"events,omitempty"`
	Suggestion *Suggestion    `json:"suggestion,omitempty"`
}

// streakWindow is how many trailing snapshots streak detection inspects.
const streakWindow = 4

// minStreak is the number of consecutive increases needed for an event.
const minStreak = 3

// ComputePulse compares the latest snapshot against the one selected by
// period. With fewer than two snapshots it returns a first-run pulse with
// no deltas.
func ComputePulse(history []RunSnapshot, period Period, now time.Time) *Pulse {
	p := &Pulse{Period: period}

	if len(history) < 2 {
		p.FirstRun = true
		if len(history) == 1 {
			latest := history[0]
			p.Latest = &latest
		}
		return p
	}

	latest := history[len(history)-1]
	comparison := selectComparison(history, period, now)
	p.Latest = &latest
	p.Comparison = &comparison

	p.Overall = makeDelta("overall", comparison.OverallPct, latest.OverallPct)
	for _, dim := range []string{score.DimensionSetup, score.DimensionUsage, score.DimensionFluency} {
		p.Dimensions = append(p.Dimensions, makeDelta(dim, comparison.dimensionValue(dim), latest.dimensionValue(dim)))
	}

	p.Patterns = patternDeltas(comparison, latest)
	p.Events = append(p.Events, tierCrossings(p.Overall, p.Dimensions)...)
	p.Events = append(p.Events, streakEvents(history)...)
	p.Suggestion = pickSuggestion(p.Patterns)
	return p
}

// selectComparison picks the snapshot to compare against. since_last takes
// the second-to-last entry; 7d/30d scan backward for the first entry at or
// before now minus the period, falling back to the earliest entry.
func selectComparison(history []RunSnapshot, period Period, now time.Time) RunSnapshot {
	if period == PeriodSinceLast {
		return history[len(history)-2]
	}

	span := 7 * 24 * time.Hour
	if period == PeriodMonth {
		span = 30 * 24 * time.Hour
	}
	cutoff := now.Add(-span)

	for i := len(history) - 2; i >= 0; i-- {
		if !history[i].Timestamp.After(cutoff) {
			return history[i]
		}
	}
	return history[0]
}

func makeDelta(name string, previous, current int) Delta {
	d := Delta{Name: name, Previous: previous, Current: current, Diff: current - previous}
	switch {
	case d.Diff > 0:
		d.Direction = DirectionUp
	case d.Diff < 0:
		d.Direction = DirectionDown
	default:
		d.Direction = DirectionStable
	}
	return d
}

// patternDeltas matches patterns from the latest snapshot against the
// comparison by name. Patterns the comparison never recorded get a zero
// diff and are flagged as newly observed.
func patternDeltas(comparison, latest RunSnapshot) []PatternDelta {
	prevByName := make(map[string]PatternScore, len(comparison.CEPatterns))
	for _, p := range comparison.CEPatterns {
		prevByName[p.Name] = p
	}

	deltas := make([]PatternDelta, 0, len(latest.CEPatterns))
	for _, p := range latest.CEPatterns {
		d := PatternDelta{ID: p.ID, Name: p.Name, Current: p.Percentage}
		if prev, ok := prevByName[p.Name]; ok {
			d.Previous = prev.Percentage
			d.Diff = p.Percentage - prev.Percentage
		} else {
			d.NewlyObserved = true
		}
		deltas = append(deltas, d)
	}
	return deltas
}

// tierCrossings emits an event wherever the qualitative tier changed.
// Direction follows the sign of the change, not the tiers involved.
func tierCrossings(overall Delta, dimensions []Delta) []Event {
	var events []Event
	for _, d := range append([]Delta{overall}, dimensions...) {
		oldTier := score.TierFor(d.Previous)
		newTier := score.TierFor(d.Current)
		if oldTier == newTier {
			continue
		}
		if d.Diff > 0 {
			events = append(events, Event{
				Type:      EventTierEntered,
				Dimension: d.Name,
				Message:   fmt.Sprintf("%s entered %s (was %s)", d.Name, newTier, oldTier),
			})
		} else {
			events = append(events, Event{
				Type:      EventTierDropped,
				Dimension: d.Name,
				Message:   fmt.Sprintf("%s dropped to %s (was %s)", d.Name, newTier, oldTier),
			})
		}
	}
	return events
}

// streakEvents detects trailing runs of strictly increasing scores over
// the last streakWindow snapshots. A decrease anywhere in the window
// zeroes the streak for that dimension.
func streakEvents(history []RunSnapshot) []Event {
	if len(history) < streakWindow {
		return nil
	}
	window := history[len(history)-streakWindow:]

	var events []Event
	for _, dim := range []string{score.DimensionSetup, score.DimensionUsage, score.DimensionFluency} {
		streak := trailingStreak(window, dim)
		if streak >= minStreak {
			events = append(events, Event{
				Type:      EventStreak,
				Dimension: dim,
				Message:   fmt.Sprintf("%s improved %d runs in a row", dim, streak),
			})
		}
	}
	return events
}

// trailingStreak counts trailing consecutive strict increases within the
// window, returning 0 if any step in the window decreased.
func trailingStreak(window []RunSnapshot, dimension string) int {
	// A decrease anywhere in the window voids the streak outright.
	for i := 1; i < len(window); i++ {
		if window[i].dimensionValue(dimension) < window[i-1].dimensionValue(dimension) {
			return 0
		}
	}

	streak := 0
	for i := len(window) - 1; i > 0; i-- {
		if window[i].dimensionValue(dimension) <= window[i-1].dimensionValue(dimension) {
			break
		}
		streak++
	}
	return streak
}

// pickSuggestion chooses the stagnant pattern (diff <= 0) with the lowest
// current percentage, first on ties, and attaches its static hint.
func pickSuggestion(deltas []PatternDelta) *Suggestion {
	var pick *PatternDelta
	for i := range deltas {
		d := &deltas[i]
		if d.Diff > 0 {
			continue
		}
		if pick == nil || d.Current < pick.Current {
			pick = d
		}
	}
	if pick == nil {
		return nil
	}
	return &Suggestion{
		PatternID:  pick.ID,
		Name:       pick.Name,
		Percentage: pick.Current,
		Hint:       patterns.HintFor(pick.ID),
	}
}
