// Package budget estimates the fixed token cost of each context surface in
// a workspace and ranks reduction opportunities by recoverable budget.
package budget

import (
	"fmt"
	"math"
	"sort"
)

// Token estimation constants. These are deliberately coarse: the goal is a
// stable, comparable estimate, not tokenizer-exact counts.
const (
	CharsPerToken     = 4
	TokensPerMCPTool  = 600
	TokensPerSkill    = 160
	SystemOverhead    = 2600
	DefaultWindowSize = 200_000
)

// MemoryLineCap is the line budget the memory file is measured against.
const MemoryLineCap = 200

// Surface identifiers, a closed set.
const (
	SurfaceInstructions = "instructions"
	SurfaceMemory       = "memory"
	SurfaceKnowledge    = "knowledge"
	SurfaceMCPTools     = "mcp_tools"
	SurfaceSkills       = "skills"
	SurfaceSettings     = "settings"
	SurfaceSystem       = "system"
)

// Inputs are the raw context-surface sizes, read directly from the
// workspace. The estimator never consumes a health report.
type Inputs struct {
	InstructionChars int
	MemoryChars      int
	MemoryLines      int
	KnowledgeChars   int
	MCPToolCount     int
	SkillCount       int
	SettingsChars    int
}

// Surface is one estimated context surface.
type Surface struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Tokens  int    `json:"tokens"`
	Detail  string `json:"detail"`
	Flagged bool   `json:"flagged"`
}

// Suggestion is a ranked reduction opportunity for a flagged surface.
type Suggestion struct {
	Surface       string `json:"surface"`
	Title         string `json:"title"`
	SavingsTokens int    `json:"savings_tokens"`
	TimeCost      string `json:"time_cost"`
	Description   string `json:"description"`
}

// Breakdown is the full context-pressure result.
type Breakdown struct {
	WindowTokens     int          `json:"window_tokens"`
	FixedTokens      int          `json:"fixed_tokens"`
	FixedPercent     int          `json:"fixed_percent"`
	Surfaces         []Surface    `json:"surfaces"`
	Suggestions      []Suggestion `json:"suggestions"`
	TotalRecoverable int          `json:"total_recoverable"`
}

// threshold is one row of the surface flagging table. Metric says what the
// limit measures so tests can verify every boundary independently.
type threshold struct {
	Surface string
	Metric  string // "tokens", "lines", or "count"
	Limit   int
}

// Thresholds is the declarative flagging table, one row per flaggable
// surface. A surface is a concern when its metric exceeds the limit.
var Thresholds = []threshold{
	{SurfaceInstructions, "tokens", 3000},
	{SurfaceMemory, "lines", 180},
	{SurfaceKnowledge, "tokens", 8000},
	{SurfaceMCPTools, "count", 30},
	{SurfaceSkills, "count", 15},
	{SurfaceSettings, "tokens", 1500},
}

func limitFor(surface string) (threshold, bool) {
	for _, t := range Thresholds {
		if t.Surface == surface {
			return t, true
		}
	}
	return threshold{}, false
}

// tokensFromChars applies the character heuristic.
func tokensFromChars(chars int) int {
	return chars / CharsPerToken
}

// Estimate computes the per-surface token costs, flags concerns against
// the threshold table, and ranks reduction suggestions by savings.
func Estimate(in Inputs, windowTokens int) *Breakdown {
	if windowTokens <= 0 {
		windowTokens = DefaultWindowSize
	}

	surfaces := []Surface{
		{
			ID:     SurfaceInstructions,
			Name:   "Instruction file (CLAUDE.md)",
			Tokens: tokensFromChars(in.InstructionChars),
			Detail: fmt.Sprintf("%d chars", in.InstructionChars),
		},
		{
			ID:     SurfaceMemory,
			Name:   "Memory file (MEMORY.md)",
			Tokens: tokensFromChars(in.MemoryChars),
			Detail: fmt.Sprintf("%d of %d lines", in.MemoryLines, MemoryLineCap),
		},
		{
			ID:     SurfaceKnowledge,
			Name:   "Knowledge files",
			Tokens: tokensFromChars(in.KnowledgeChars),
			Detail: fmt.Sprintf("%d chars", in.KnowledgeChars),
		},
		{
			ID:     SurfaceMCPTools,
			Name:   "MCP tool registrations",
			Tokens: in.MCPToolCount * TokensPerMCPTool,
			Detail: fmt.Sprintf("%d tools", in.MCPToolCount),
		},
		{
			ID:     SurfaceSkills,
			Name:   "Skill definitions",
			Tokens: in.SkillCount * TokensPerSkill,
			Detail: fmt.Sprintf("%d skills", in.SkillCount),
		},
		{
			ID:     SurfaceSettings,
			Name:   "Hooks and settings",
			Tokens: tokensFromChars(in.SettingsChars),
			Detail: fmt.Sprintf("%d chars", in.SettingsChars),
		},
		{
			ID:     SurfaceSystem,
			Name:   "System overhead",
			Tokens: SystemOverhead,
			Detail: "fixed",
		},
	}

	b := &Breakdown{WindowTokens: windowTokens}
	for i := range surfaces {
		surfaces[i].Flagged = flagged(surfaces[i], in)
		b.FixedTokens += surfaces[i].Tokens
		if surfaces[i].Flagged {
			if s, ok := suggestionFor(surfaces[i], in); ok {
				b.Suggestions = append(b.Suggestions, s)
			}
		}
	}
	b.Surfaces = surfaces
	b.FixedPercent = int(math.Round(float64(b.FixedTokens) / float64(windowTokens) * 100))

	sort.SliceStable(b.Suggestions, func(i, j int) bool {
		return b.Suggestions[i].SavingsTokens > b.Suggestions[j].SavingsTokens
	})
	for _, s := range b.Suggestions {
		b.TotalRecoverable += s.SavingsTokens
	}
	return b
}

// flagged applies the threshold table to one surface.
func flagged(s Surface, in Inputs) bool {
	t, ok := limitFor(s.ID)
	if !ok {
		return false
	}
	switch t.Metric {
	case "lines":
		return in.MemoryLines > t.Limit
	case "count":
		if s.ID == SurfaceMCPTools {
			return in.MCPToolCount > t.Limit
		}
		return in.SkillCount > t.Limit
	default:
		return s.Tokens > t.Limit
	}
}

// suggestionFor builds the reduction suggestion for a flagged surface.
// Savings are the estimated tokens above the surface's comfortable size.
func suggestionFor(s Surface, in Inputs) (Suggestion, bool) {
	switch s.ID {
	case SurfaceInstructions:
		return Suggestion{
			Surface:       s.ID,
			Title:         "Slim down CLAUDE.md",
			SavingsTokens: s.Tokens - 3000,
			TimeCost:      "~30 min",
			Description:   "Move reference material into @-linked files and keep only enforceable rules inline.",
		}, true
	case SurfaceMemory:
		// Compacting to half the line cap frees the proportional share.
		target := tokensFromChars(in.MemoryChars) * (MemoryLineCap / 2) / in.MemoryLines
		return Suggestion{
			Surface:       s.ID,
			Title:         "Compact the memory file",
			SavingsTokens: s.Tokens - target,
			TimeCost:      "~15 min",
			Description:   "Archive resolved entries and merge duplicates; aim for under 100 lines.",
		}, true
	case SurfaceKnowledge:
		return Suggestion{
			Surface:       s.ID,
			Title:         "Defer knowledge files",
			SavingsTokens: s.Tokens - 8000,
			TimeCost:      "~20 min",
			Description:   "Load topic files on demand instead of referencing them all from CLAUDE.md.",
		}, true
	case SurfaceMCPTools:
		return Suggestion{
			Surface:       s.ID,
			Title:         "Prune MCP servers",
			SavingsTokens: (in.MCPToolCount - 30) * TokensPerMCPTool,
			TimeCost:      "~10 min",
			Description:   "Every registered tool costs schema tokens on every request; disconnect unused servers.",
		}, true
	case SurfaceSkills:
		return Suggestion{
			Surface:       s.ID,
			Title:         "Consolidate skills",
			SavingsTokens: (in.SkillCount - 15) * TokensPerSkill,
			TimeCost:      "~25 min",
			Description:   "Merge overlapping skills and delete ones you never invoke.",
		}, true
	case SurfaceSettings:
		return Suggestion{
			Surface:       s.ID,
			Title:         "Simplify hooks and settings",
			SavingsTokens: s.Tokens - 1500,
			TimeCost:      "~15 min",
			Description:   "Collapse per-event hook duplication and drop disabled entries.",
		}, true
	}
	return Suggestion{}, false
}
