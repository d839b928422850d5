package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateQuietWorkspaceHasNoSuggestions(t *testing.T) {
	b := Estimate(Inputs{
		InstructionChars: 4000, // 1000 tokens, under 3000
		MemoryChars:      2000,
		MemoryLines:      50,
		MCPToolCount:     5,
		SkillCount:       3,
		SettingsChars:    1000,
	}, 0)

	assert.Equal(t, DefaultWindowSize, b.WindowTokens)
	assert.Empty(t, b.Suggestions)
	assert.Equal(t, 0, b.TotalRecoverable)
	for _, s := range b.Surfaces {
		assert.False(t, s.Flagged, "surface %s should not be flagged", s.ID)
	}
}

func TestEstimateAlwaysReportsAllSurfaces(t *testing.T) {
	b := Estimate(Inputs{}, 0)
	require.Len(t, b.Surfaces, 7)
	// System overhead is always present even in an empty workspace.
	assert.Equal(t, SystemOverhead, b.FixedTokens)
}

func TestEstimateFlagsOversizedInstructions(t *testing.T) {
	b := Estimate(Inputs{InstructionChars: 20000}, 0) // 5000 tokens
	var instr Surface
	for _, s := range b.Surfaces {
		if s.ID == SurfaceInstructions {
			instr = s
		}
	}
	assert.True(t, instr.Flagged)
	require.NotEmpty(t, b.Suggestions)
	assert.Equal(t, SurfaceInstructions, b.Suggestions[0].Surface)
	assert.Equal(t, 2000, b.Suggestions[0].SavingsTokens)
}

func TestEstimateThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		in      Inputs
		surface string
		flagged bool
	}{
		{"instructions at limit", Inputs{InstructionChars: 3000 * CharsPerToken}, SurfaceInstructions, false},
		{"instructions over limit", Inputs{InstructionChars: 3001 * CharsPerToken}, SurfaceInstructions, true},
		{"memory at line cap threshold", Inputs{MemoryLines: 180, MemoryChars: 100}, SurfaceMemory, false},
		{"memory over line cap threshold", Inputs{MemoryLines: 181, MemoryChars: 100}, SurfaceMemory, true},
		{"thirty tools ok", Inputs{MCPToolCount: 30}, SurfaceMCPTools, false},
		{"thirty-one tools flagged", Inputs{MCPToolCount: 31}, SurfaceMCPTools, true},
		{"fifteen skills ok", Inputs{SkillCount: 15}, SurfaceSkills, false},
		{"sixteen skills flagged", Inputs{SkillCount: 16}, SurfaceSkills, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Estimate(tt.in, 0)
			for _, s := range b.Surfaces {
				if s.ID == tt.surface {
					assert.Equal(t, tt.flagged, s.Flagged)
				}
			}
		})
	}
}

func TestEstimateSuggestionsSortedBySavings(t *testing.T) {
	b := Estimate(Inputs{
		InstructionChars: 16000, // 4000 tokens -> 1000 savings
		MCPToolCount:     40,    // 10 over -> 6000 savings
		SkillCount:       20,    // 5 over -> 800 savings
	}, 0)

	require.Len(t, b.Suggestions, 3)
	for i := 1; i < len(b.Suggestions); i++ {
		assert.GreaterOrEqual(t, b.Suggestions[i-1].SavingsTokens, b.Suggestions[i].SavingsTokens)
	}
	assert.Equal(t, SurfaceMCPTools, b.Suggestions[0].Surface)

	total := 0
	for _, s := range b.Suggestions {
		total += s.SavingsTokens
	}
	assert.Equal(t, total, b.TotalRecoverable)
}

func TestEstimatePerItemCosts(t *testing.T) {
	b := Estimate(Inputs{MCPToolCount: 3, SkillCount: 2}, 0)
	for _, s := range b.Surfaces {
		switch s.ID {
		case SurfaceMCPTools:
			assert.Equal(t, 3*TokensPerMCPTool, s.Tokens)
		case SurfaceSkills:
			assert.Equal(t, 2*TokensPerSkill, s.Tokens)
		}
	}
}

func TestThresholdTableCoversFlaggableSurfaces(t *testing.T) {
	want := []string{
		SurfaceInstructions, SurfaceMemory, SurfaceKnowledge,
		SurfaceMCPTools, SurfaceSkills, SurfaceSettings,
	}
	require.Len(t, Thresholds, len(want))
	for _, id := range want {
		_, ok := limitFor(id)
		assert.True(t, ok, "missing threshold for %s", id)
	}
	// System overhead is fixed and never flaggable.
	_, ok := limitFor(SurfaceSystem)
	assert.False(t, ok)
}

func TestFixedPercentRounds(t *testing.T) {
	// 2600 fixed tokens of a 104k window is exactly 2.5%, which rounds up
	// rather than truncating to 2.
	b := Estimate(Inputs{}, 104_000)
	assert.Equal(t, 2600, b.FixedTokens)
	assert.Equal(t, 3, b.FixedPercent)
}
