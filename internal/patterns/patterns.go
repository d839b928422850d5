// Package patterns re-projects a report's layers onto the fixed vocabulary
// of context-engineering capability patterns.
package patterns

import (
	"strings"

	"github.com/blackwell-systems/claudepulse/internal/score"
)

// Pattern is a cross-cutting capability score computed by summing every
// layer (across all three dimensions) whose name matches the pattern's
// alias set. Patterns are virtual: recomputed from a report, never stored
// as their own entity.
type Pattern struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Percentage    int    `json:"percentage"`
	MatchedLayers int    `json:"matched_layers"`
}

// def declares one pattern and the lowercased layer-name substrings it
// matches. Layer names are a closed, known set, so this is a lookup table,
// not a runtime content search.
type def struct {
	ID      string
	Name    string
	Aliases []string
	Hint    string
}

// Table is the fixed pattern vocabulary, in report order. The mapper
// always emits exactly one entry per row.
var Table = []def{
	{
		ID:      "progressive-disclosure",
		Name:    "Progressive Disclosure",
		Aliases: []string{"progressive disclosure", "skills"},
		Hint:    "Split large skills into a short SKILL.md with details in linked files loaded on demand.",
	},
	{
		ID:      "three-layer-memory",
		Name:    "Three-Layer Memory",
		Aliases: []string{"memory"},
		Hint:    "Keep CLAUDE.md for stable rules, MEMORY.md for rolling context, and per-topic memory files for depth.",
	},
	{
		ID:      "compound-learning",
		Name:    "Compound Learning",
		Aliases: []string{"memory freshness", "session activity"},
		Hint:    "End sessions by writing one durable lesson to memory so each run starts smarter than the last.",
	},
	{
		ID:      "context-hygiene",
		Name:    "Context Hygiene",
		Aliases: []string{"instructions", "permissions"},
		Hint:    "Trim CLAUDE.md to enforceable rules and move reference material behind @-links.",
	},
	{
		ID:      "tool-curation",
		Name:    "Tool Curation",
		Aliases: []string{"tool connections", "plugin adoption"},
		Hint:    "Disconnect MCP servers you have not used in the last month; every registration costs context.",
	},
	{
		ID:      "verification-loops",
		Name:    "Verification Loops",
		Aliases: []string{"verification", "hooks"},
		Hint:    "Add a post-edit hook that runs your formatter or test suite so mistakes surface immediately.",
	},
	{
		ID:      "subagent-delegation",
		Name:    "Subagent Delegation",
		Aliases: []string{"subagents", "delegation"},
		Hint:    "Define one focused subagent for your most repetitive review or research task.",
	},
}

// MapReport maps a report's layers onto the pattern vocabulary. The result
// always has exactly len(Table) entries in table order; a pattern no layer
// matches reports a zero percentage, never a division artifact.
func MapReport(r *score.Report) []Pattern {
	return MapLayers(r.AllLayers())
}

// MapLayers is the layer-level form of MapReport, usable standalone for
// comparing arbitrary layer sets.
func MapLayers(layers []score.Layer) []Pattern {
	result := make([]Pattern, 0, len(Table))
	for _, d := range Table {
		points, max, matched := 0, 0, 0
		for _, layer := range layers {
			if matchesAny(layer.Name, d.Aliases) {
				points += layer.Points
				max += layer.MaxPoints
				matched++
			}
		}
		result = append(result, Pattern{
			ID:            d.ID,
			Name:          d.Name,
			Percentage:    score.NormalizeScore(points, max),
			MatchedLayers: matched,
		})
	}
	return result
}

// HintFor returns the static actionable hint for a pattern ID, or an empty
// string for an unknown ID.
func HintFor(id string) string {
	for _, d := range Table {
		if d.ID == id {
			return d.Hint
		}
	}
	return ""
}

func matchesAny(layerName string, aliases []string) bool {
	name := strings.ToLower(layerName)
	for _, alias := range aliases {
		if strings.Contains(name, alias) {
			return true
		}
	}
	return false
}
