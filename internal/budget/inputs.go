package budget

import "github.com/blackwell-systems/claudepulse/internal/claude"

// InputsFromWorkspace projects a loaded workspace into the raw surface
// sizes the estimator consumes.
func InputsFromWorkspace(ws *claude.Workspace) Inputs {
	return Inputs{
		InstructionChars: int(ws.Instructions.Size),
		MemoryChars:      int(ws.Memory.Size),
		MemoryLines:      ws.Memory.Lines,
		KnowledgeChars:   ws.KnowledgeChars,
		MCPToolCount:     ws.EstimatedToolCount(),
		SkillCount:       len(ws.Skills),
		SettingsChars:    ws.SettingsChars,
	}
}
