package checks

import "github.com/blackwell-systems/claudepulse/internal/score"

// DefaultProviders returns the built-in provider set in report order.
// Order matters for recommendation tie-breaking, so keep it stable.
func DefaultProviders() []Provider {
	return []Provider{
		{Name: "Instructions", Dimension: score.DimensionSetup, Run: instructionsProvider},
		{Name: "Skills", Dimension: score.DimensionSetup, Run: skillsProvider},
		{Name: "Hooks", Dimension: score.DimensionSetup, Run: hooksProvider},
		{Name: "Subagents", Dimension: score.DimensionSetup, Run: subagentsProvider},
		{Name: "Tool Connections", Dimension: score.DimensionSetup, Run: toolConnectionsProvider},
		{Name: "Permissions", Dimension: score.DimensionSetup, Run: permissionsProvider},

		{Name: "Session Activity", Dimension: score.DimensionUsage, Run: sessionActivityProvider},
		{Name: "Command Usage", Dimension: score.DimensionUsage, Run: commandUsageProvider},
		{Name: "Memory Freshness", Dimension: score.DimensionUsage, Run: memoryFreshnessProvider},
		{Name: "Plugin Adoption", Dimension: score.DimensionUsage, Run: pluginAdoptionProvider},

		{Name: "Memory Architecture", Dimension: score.DimensionFluency, Run: memoryArchitectureProvider},
		{Name: "Progressive Disclosure", Dimension: score.DimensionFluency, Run: progressiveDisclosureProvider},
		{Name: "Verification Loops", Dimension: score.DimensionFluency, Run: verificationLoopsProvider},
		{Name: "Delegation Patterns", Dimension: score.DimensionFluency, Run: delegationPatternsProvider},
	}
}
