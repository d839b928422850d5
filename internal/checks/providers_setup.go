package checks

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/claudepulse/internal/claude"
	"github.com/blackwell-systems/claudepulse/internal/score"
)

func instructionsProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult

	if ws.Instructions.Exists {
		checks = append(checks, score.NewCheckResult(
			"CLAUDE.md present", score.StatusPass, 10, 10,
			fmt.Sprintf("%d bytes", ws.Instructions.Size)))
	} else {
		checks = append(checks, score.NewCheckResult(
			"CLAUDE.md present", score.StatusFail, 0, 10,
			"Create a CLAUDE.md with your project's rules and conventions"))
	}

	switch {
	case ws.Instructions.Size > 500:
		checks = append(checks, score.NewCheckResult(
			"CLAUDE.md substance", score.StatusPass, 5, 5,
			"instruction file has real content"))
	case ws.Instructions.Size > 100:
		checks = append(checks, score.NewCheckResult(
			"CLAUDE.md substance", score.StatusWarn, 3, 5,
			"instruction file is thin; add build commands and conventions"))
	default:
		checks = append(checks, score.NewCheckResult(
			"CLAUDE.md substance", score.StatusFail, 0, 5,
			"instruction file is empty or near-empty"))
	}

	if ws.Instructions.Headings >= 3 {
		checks = append(checks, score.NewCheckResult(
			"Structured sections", score.StatusPass, 3, 3,
			fmt.Sprintf("%d headings", ws.Instructions.Headings)))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Structured sections", score.StatusWarn, 0, 3,
			"organize CLAUDE.md into sections (build, style, architecture)"))
	}

	if len(ws.Instructions.References) > 0 {
		checks = append(checks, score.NewCheckResult(
			"Linked reference files", score.StatusPass, 2, 2,
			fmt.Sprintf("%d @-references", len(ws.Instructions.References))))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Linked reference files", score.StatusWarn, 0, 2,
			"link deep reference material with @file paths instead of inlining it"))
	}

	return score.NewLayer("Instructions", checks)
}

func skillsProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult

	if len(ws.Skills) > 0 {
		checks = append(checks, score.NewCheckResult(
			"Skills defined", score.StatusPass, 8, 8,
			fmt.Sprintf("%d skills", len(ws.Skills))))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Skills defined", score.StatusFail, 0, 8,
			"define at least one skill in .claude/skills/ for a repeated workflow"))
	}

	described := 0
	for _, s := range ws.Skills {
		if s.Description != "" {
			described++
		}
	}
	if len(ws.Skills) > 0 && described == len(ws.Skills) {
		checks = append(checks, score.NewCheckResult(
			"Skill descriptions", score.StatusPass, 4, 4,
			"every skill declares a description"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Skill descriptions", score.StatusWarn, described, 4,
			"add a description to every SKILL.md so the model knows when to invoke it"))
	}

	return score.NewLayer("Skills", checks)
}

func hooksProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult
	settings := ws.MergedSettings()

	events := settings.HookEventCount()
	if events > 0 {
		checks = append(checks, score.NewCheckResult(
			"Hooks configured", score.StatusPass, 6, 6,
			fmt.Sprintf("%d hook events", events)))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Hooks configured", score.StatusFail, 0, 6,
			"configure hooks in settings.json to automate checks around tool use"))
	}

	if hasPostEditAutomation(settings) {
		checks = append(checks, score.NewCheckResult(
			"Post-edit automation", score.StatusPass, 4, 4,
			"a PostToolUse hook runs after edits"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Post-edit automation", score.StatusWarn, 0, 4,
			"add a PostToolUse hook that formats or lints edited files"))
	}

	return score.NewLayer("Hooks", checks)
}

func subagentsProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult

	if len(ws.Agents) > 0 {
		checks = append(checks, score.NewCheckResult(
			"Subagents defined", score.StatusPass, 5, 5,
			fmt.Sprintf("%d agents", len(ws.Agents))))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Subagents defined", score.StatusFail, 0, 5,
			"define a subagent in .claude/agents/ for delegable work"))
	}

	described := 0
	for _, a := range ws.Agents {
		if a.Description != "" {
			described++
		}
	}
	if len(ws.Agents) > 0 && described == len(ws.Agents) {
		checks = append(checks, score.NewCheckResult(
			"Agent descriptions", score.StatusPass, 3, 3,
			"every agent declares a description"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Agent descriptions", score.StatusWarn, 0, 3,
			"describe each agent so delegation is automatic, not manual"))
	}

	return score.NewLayer("Subagents", checks)
}

func toolConnectionsProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult

	if len(ws.MCPServers) > 0 {
		checks = append(checks, score.NewCheckResult(
			"MCP servers registered", score.StatusPass, 4, 4,
			fmt.Sprintf("%d servers", len(ws.MCPServers))))
	} else {
		checks = append(checks, score.NewCheckResult(
			"MCP servers registered", score.StatusWarn, 0, 4,
			"connect the external systems you work with via .mcp.json"))
	}

	if len(ws.MCPServers) <= 10 {
		checks = append(checks, score.NewCheckResult(
			"Tool surface bounded", score.StatusPass, 3, 3,
			"registration count is within budget"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Tool surface bounded", score.StatusWarn, 0, 3,
			fmt.Sprintf("%d MCP servers registered; each costs context on every request", len(ws.MCPServers))))
	}

	return score.NewLayer("Tool Connections", checks)
}

func permissionsProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult
	settings := ws.MergedSettings()

	var allow, deny []string
	if settings != nil {
		allow = settings.Permissions.Allow
		deny = settings.Permissions.Deny
	}

	if len(deny) > 0 {
		checks = append(checks, score.NewCheckResult(
			"Deny rules present", score.StatusPass, 3, 3,
			fmt.Sprintf("%d deny rules", len(deny))))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Deny rules present", score.StatusWarn, 0, 3,
			"deny access to secrets (.env, credentials) in permissions"))
	}

	if wildcard := wildcardAllow(allow); wildcard == "" {
		checks = append(checks, score.NewCheckResult(
			"No blanket allows", score.StatusPass, 4, 4,
			"allow rules are scoped"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"No blanket allows", score.StatusFail, 0, 4,
			fmt.Sprintf("allow rule %q grants everything; scope it down", wildcard)))
	}

	return score.NewLayer("Permissions", checks)
}

// hasPostEditAutomation reports whether any PostToolUse hook is wired.
func hasPostEditAutomation(settings *claude.Settings) bool {
	if settings == nil {
		return false
	}
	for _, m := range settings.Hooks["PostToolUse"] {
		if len(m.Hooks) > 0 {
			return true
		}
	}
	return false
}

// wildcardAllow returns the first allow rule that grants everything.
func wildcardAllow(allow []string) string {
	for _, rule := range allow {
		trimmed := strings.TrimSpace(rule)
		if trimmed == "*" || trimmed == "Bash(*)" || strings.HasPrefix(trimmed, "Bash(*") {
			return rule
		}
	}
	return ""
}
