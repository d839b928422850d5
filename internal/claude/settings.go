package claude

import (
	"encoding/json"
	"os"
	"sort"
)

// parseSettingsFile reads a settings.json-shaped file. Missing or
// malformed files yield nil; the workspace simply has no settings.
func parseSettingsFile(path string) *Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

// mcpConfig is the shape of a .mcp.json file.
type mcpConfig struct {
	MCPServers map[string]struct {
		Command string `json:"command"`
		URL     string `json:"url"`
	} `json:"mcpServers"`
}

// parseMCPServers reads .mcp.json and returns the registered servers
// sorted by name for deterministic output.
func parseMCPServers(path string) []MCPServer {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var cfg mcpConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil
	}

	servers := make([]MCPServer, 0, len(cfg.MCPServers))
	for name, def := range cfg.MCPServers {
		servers = append(servers, MCPServer{Name: name, Command: def.Command, URL: def.URL})
	}
	sort.Slice(servers, func(i, j int) bool { return servers[i].Name < servers[j].Name })
	return servers
}

// ToolsPerServer is the assumed number of tools a typical MCP server
// registers; .mcp.json does not carry tool schemas, so registration cost
// is estimated per server.
const ToolsPerServer = 8

// EstimatedToolCount approximates the number of registered external tools.
func (w *Workspace) EstimatedToolCount() int {
	return len(w.MCPServers) * ToolsPerServer
}
