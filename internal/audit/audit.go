// Package audit runs configuration lint rules over a workspace and
// groups the findings by category and severity.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/claudepulse/internal/budget"
	"github.com/blackwell-systems/claudepulse/internal/claude"
)

// Finding categories, a closed set.
const (
	CategoryReferences  = "references"
	CategoryConflicts   = "conflicts"
	CategorySecurity    = "security"
	CategoryUnused      = "unused"
	CategoryPerformance = "performance"
)

// Severity levels, ordered most severe first.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Categories lists every audit category in canonical order.
var Categories = []string{
	CategoryReferences,
	CategoryConflicts,
	CategorySecurity,
	CategoryUnused,
	CategoryPerformance,
}

// Finding is one audit result.
type Finding struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// rule inspects one aspect of the workspace and yields findings.
type rule func(ws *claude.Workspace) []Finding

// rulesByCategory maps each category to its rule.
var rulesByCategory = map[string]rule{
	CategoryReferences:  checkReferences,
	CategoryConflicts:   checkConflicts,
	CategorySecurity:    checkSecurity,
	CategoryUnused:      checkUnused,
	CategoryPerformance: checkPerformance,
}

// Run executes the rules for the requested categories (all of them when
// categories is empty) and returns the findings sorted by severity.
func Run(ws *claude.Workspace, categories []string) []Finding {
	if len(categories) == 0 {
		categories = Categories
	}

	var findings []Finding
	for _, cat := range Categories {
		if !contains(categories, cat) {
			continue
		}
		findings = append(findings, rulesByCategory[cat](ws)...)
	}
	return sortBySeverity(findings)
}

// severityRank orders findings: errors, then warnings, then info.
func severityRank(s string) int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

func sortBySeverity(findings []Finding) []Finding {
	// Stable insertion keeps rule order within a severity level.
	sorted := make([]Finding, 0, len(findings))
	for rank := 0; rank <= 2; rank++ {
		for _, f := range findings {
			if severityRank(f.Severity) == rank {
				sorted = append(sorted, f)
			}
		}
	}
	return sorted
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// checkReferences verifies that every @-reference in CLAUDE.md resolves
// to an existing file under the workspace root.
func checkReferences(ws *claude.Workspace) []Finding {
	var findings []Finding
	for _, ref := range ws.Instructions.References {
		target := ref
		if !filepath.IsAbs(target) {
			target = filepath.Join(ws.Root, ref)
		}
		if _, err := os.Stat(target); err != nil {
			findings = append(findings, Finding{
				Category: CategoryReferences,
				Severity: SeverityError,
				Message:  fmt.Sprintf("CLAUDE.md references @%s which does not exist", ref),
			})
		}
	}
	return findings
}

// checkConflicts looks for contradictory or duplicated configuration.
func checkConflicts(ws *claude.Workspace) []Finding {
	var findings []Finding
	settings := ws.MergedSettings()
	if settings == nil {
		return nil
	}

	// A rule appearing in both allow and deny is contradictory.
	denied := map[string]bool{}
	for _, d := range settings.Permissions.Deny {
		denied[d] = true
	}
	for _, a := range settings.Permissions.Allow {
		if denied[a] {
			findings = append(findings, Finding{
				Category: CategoryConflicts,
				Severity: SeverityError,
				Message:  fmt.Sprintf("permission rule %q is both allowed and denied", a),
			})
		}
	}

	// The same hook command registered twice on one event runs twice.
	for event, matchers := range settings.Hooks {
		seen := map[string]bool{}
		for _, m := range matchers {
			for _, h := range m.Hooks {
				if h.Command == "" {
					continue
				}
				if seen[h.Command] {
					findings = append(findings, Finding{
						Category: CategoryConflicts,
						Severity: SeverityWarning,
						Message:  fmt.Sprintf("hook command %q registered twice on %s", h.Command, event),
					})
				}
				seen[h.Command] = true
			}
		}
	}
	return findings
}

// dangerousFragments are substrings that make a hook command a risk.
var dangerousFragments = []string{"curl ", "wget ", "| sh", "| bash", "rm -rf", "sudo "}

// checkSecurity flags permissive rules and risky hook commands.
func checkSecurity(ws *claude.Workspace) []Finding {
	var findings []Finding
	settings := ws.MergedSettings()
	if settings == nil {
		return []Finding{{
			Category: CategorySecurity,
			Severity: SeverityInfo,
			Message:  "no settings.json found; permissions are unrestricted defaults",
		}}
	}

	for _, rule := range settings.Permissions.Allow {
		trimmed := strings.TrimSpace(rule)
		if trimmed == "*" || strings.HasPrefix(trimmed, "Bash(*") {
			findings = append(findings, Finding{
				Category: CategorySecurity,
				Severity: SeverityError,
				Message:  fmt.Sprintf("allow rule %q grants unrestricted access", rule),
			})
		}
	}

	for event, matchers := range settings.Hooks {
		for _, m := range matchers {
			for _, h := range m.Hooks {
				for _, frag := range dangerousFragments {
					if strings.Contains(h.Command, frag) {
						findings = append(findings, Finding{
							Category: CategorySecurity,
							Severity: SeverityWarning,
							Message:  fmt.Sprintf("%s hook runs a risky command: %q", event, h.Command),
						})
						break
					}
				}
			}
		}
	}

	if len(settings.Permissions.Deny) == 0 {
		findings = append(findings, Finding{
			Category: CategorySecurity,
			Severity: SeverityInfo,
			Message:  "no deny rules configured; consider denying reads of .env and credentials",
		})
	}
	return findings
}

// checkUnused flags defined-but-unreferenced artifacts.
func checkUnused(ws *claude.Workspace) []Finding {
	var findings []Finding

	instructions := ""
	if ws.Instructions.Exists {
		if data, err := os.ReadFile(ws.Instructions.Path); err == nil {
			instructions = strings.ToLower(string(data))
		}
	}

	for _, s := range ws.Skills {
		if s.Description == "" {
			findings = append(findings, Finding{
				Category: CategoryUnused,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("skill %q has no description and will rarely be invoked", s.Name),
			})
			continue
		}
		if instructions != "" && !strings.Contains(instructions, strings.ToLower(s.Name)) {
			findings = append(findings, Finding{
				Category: CategoryUnused,
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("skill %q is never mentioned in CLAUDE.md", s.Name),
			})
		}
	}

	for _, a := range ws.Agents {
		if a.Description == "" {
			findings = append(findings, Finding{
				Category: CategoryUnused,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("agent %q has no description; delegation will never trigger", a.Name),
			})
		}
	}
	return findings
}

// checkPerformance flags artifacts that eat context budget.
func checkPerformance(ws *claude.Workspace) []Finding {
	var findings []Finding

	instrTokens := int(ws.Instructions.Size) / budget.CharsPerToken
	if instrTokens > 3000 {
		findings = append(findings, Finding{
			Category: CategoryPerformance,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("CLAUDE.md weighs ~%d tokens; every request pays for it", instrTokens),
		})
	}

	if ws.Memory.Lines > budget.MemoryLineCap {
		findings = append(findings, Finding{
			Category: CategoryPerformance,
			Severity: SeverityError,
			Message:  fmt.Sprintf("memory file is %d lines, over the %d-line cap", ws.Memory.Lines, budget.MemoryLineCap),
		})
	}

	if len(ws.MCPServers) > 10 {
		findings = append(findings, Finding{
			Category: CategoryPerformance,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%d MCP servers registered; schemas are loaded on every request", len(ws.MCPServers)),
		})
	}
	return findings
}
