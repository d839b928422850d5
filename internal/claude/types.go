// Package claude reads the configuration artifacts of a Claude Code
// workspace: instruction files, skills, agents, hooks, settings, memory,
// and MCP registrations. All readers are tolerant — a missing artifact is
// data, never an error.
package claude

import "time"

// FileStats describes one workspace file without retaining its content
// beyond what checks and audits need.
type FileStats struct {
	Path       string    `json:"path"`
	Exists     bool      `json:"exists"`
	Size       int64     `json:"size"`
	Lines      int       `json:"lines"`
	Headings   int       `json:"headings"`
	References []string  `json:"references,omitempty"`
	ModTime    time.Time `json:"mod_time"`
}

// Skill is one parsed skill definition (.claude/skills/<name>/SKILL.md).
type Skill struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	AllowedTools []string `json:"allowed_tools,omitempty"`
	Path         string   `json:"path"`
	BodyChars    int      `json:"body_chars"`
	LinkedFiles  int      `json:"linked_files"`
}

// Agent is one parsed subagent definition (.claude/agents/<name>.md).
type Agent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Model       string `json:"model,omitempty"`
	Path        string `json:"path"`
	BodyChars   int    `json:"body_chars"`
}

// HookCommand is a single hook action inside a matcher block.
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// HookMatcher groups hook commands under a tool-name matcher.
type HookMatcher struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []HookCommand `json:"hooks"`
}

// Permissions holds the allow/deny rule lists from settings.
type Permissions struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// Settings is the parsed shape of settings.json / settings.local.json.
type Settings struct {
	Hooks          map[string][]HookMatcher `json:"hooks,omitempty"`
	Permissions    Permissions              `json:"permissions,omitempty"`
	EnabledPlugins map[string]bool          `json:"enabledPlugins,omitempty"`
}

// HookEventCount returns the number of hook events with at least one command.
func (s *Settings) HookEventCount() int {
	if s == nil {
		return 0
	}
	count := 0
	for _, matchers := range s.Hooks {
		for _, m := range matchers {
			if len(m.Hooks) > 0 {
				count++
				break
			}
		}
	}
	return count
}

// MCPServer is one registered MCP server from .mcp.json.
type MCPServer struct {
	Name    string `json:"name"`
	Command string `json:"command,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Workspace is everything the check providers, audit rules, and budget
// estimator read. Populated once per invocation by LoadWorkspace.
type Workspace struct {
	Root          string      `json:"root"`
	Instructions  FileStats   `json:"instructions"`
	Memory        FileStats   `json:"memory"`
	Skills        []Skill     `json:"skills"`
	Agents        []Agent     `json:"agents"`
	Commands      []string    `json:"commands"`
	Rules         []FileStats `json:"rules"`
	Settings      *Settings   `json:"settings,omitempty"`
	LocalSettings *Settings   `json:"local_settings,omitempty"`
	SettingsChars int         `json:"settings_chars"`
	MCPServers    []MCPServer `json:"mcp_servers"`
	KnowledgeChars int        `json:"knowledge_chars"`
	SessionCount   int        `json:"session_count"`
	LastSession    time.Time  `json:"last_session"`
}

// MergedSettings returns the effective settings, with local entries
// layered over shared ones the way Claude Code resolves them.
func (w *Workspace) MergedSettings() *Settings {
	if w.LocalSettings == nil {
		return w.Settings
	}
	if w.Settings == nil {
		return w.LocalSettings
	}
	merged := &Settings{
		Hooks:          map[string][]HookMatcher{},
		EnabledPlugins: map[string]bool{},
	}
	for event, m := range w.Settings.Hooks {
		merged.Hooks[event] = m
	}
	for event, m := range w.LocalSettings.Hooks {
		merged.Hooks[event] = append(merged.Hooks[event], m...)
	}
	for name, on := range w.Settings.EnabledPlugins {
		merged.EnabledPlugins[name] = on
	}
	for name, on := range w.LocalSettings.EnabledPlugins {
		merged.EnabledPlugins[name] = on
	}
	merged.Permissions.Allow = append(append([]string{}, w.Settings.Permissions.Allow...), w.LocalSettings.Permissions.Allow...)
	merged.Permissions.Deny = append(append([]string{}, w.Settings.Permissions.Deny...), w.LocalSettings.Permissions.Deny...)
	return merged
}
