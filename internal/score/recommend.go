package score

import "sort"

// DefaultTopFixCount is how many recommendations a report carries.
const DefaultTopFixCount = 5

// TopFixes scans every non-passing check across the given dimensions and
// returns the k highest-impact recommendations.
//
// Impact is the check's point deficit normalized against its own
// dimension's ceiling, so a 3-point gap in a 10-point dimension outranks
// a 3-point gap in a 50-point one. The sort is stable: ties keep
// discovery order (dimension order, then layer order, then check order).
func TopFixes(dimensions []Dimension, k int) []Recommendation {
	var recs []Recommendation
	for _, dim := range dimensions {
		for _, layer := range dim.Layers {
			for _, check := range layer.Checks {
				if check.Status == StatusPass {
					continue
				}
				deficit := check.MaxPoints - check.Points
				recs = append(recs, Recommendation{
					Title:       check.Name,
					Impact:      NormalizeScore(deficit, dim.MaxPoints),
					Description: check.Message,
					Category:    dim.Name,
				})
			}
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Impact > recs[j].Impact
	})

	if len(recs) > k {
		recs = recs[:k]
	}
	return recs
}
