package checks

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/claudepulse/internal/claude"
	"github.com/blackwell-systems/claudepulse/internal/score"
)

func memoryArchitectureProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult

	if ws.Instructions.Exists && ws.Memory.Exists {
		checks = append(checks, score.NewCheckResult(
			"Instruction and memory layers", score.StatusPass, 5, 5,
			"stable rules and rolling memory are separated"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Instruction and memory layers", score.StatusFail, 0, 5,
			"keep stable rules in CLAUDE.md and rolling context in MEMORY.md"))
	}

	if len(ws.Rules) > 0 {
		checks = append(checks, score.NewCheckResult(
			"Topic rule files", score.StatusPass, 4, 4,
			fmt.Sprintf("%d rule files", len(ws.Rules))))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Topic rule files", score.StatusWarn, 0, 4,
			"split per-topic depth into .claude/rules/ files"))
	}

	return score.NewLayer("Memory Architecture", checks)
}

func progressiveDisclosureProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult

	layered := 0
	for _, s := range ws.Skills {
		if s.LinkedFiles > 0 {
			layered++
		}
	}
	if layered > 0 {
		checks = append(checks, score.NewCheckResult(
			"Layered skills", score.StatusPass, 5, 5,
			fmt.Sprintf("%d skills keep detail in linked files", layered)))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Layered skills", score.StatusWarn, 0, 5,
			"move skill detail into sibling files loaded on demand"))
	}

	oversized := 0
	for _, s := range ws.Skills {
		if s.BodyChars > 4000 {
			oversized++
		}
	}
	if len(ws.Skills) > 0 && oversized == 0 {
		checks = append(checks, score.NewCheckResult(
			"Lean skill bodies", score.StatusPass, 4, 4,
			"no skill body exceeds 4k characters"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Lean skill bodies", score.StatusWarn, 0, 4,
			fmt.Sprintf("%d oversized skill bodies; summarize and link instead", oversized)))
	}

	return score.NewLayer("Progressive Disclosure", checks)
}

func verificationLoopsProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult
	settings := ws.MergedSettings()

	if hasVerificationHook(settings) {
		checks = append(checks, score.NewCheckResult(
			"Automated verification", score.StatusPass, 6, 6,
			"a hook runs tests, lint, or formatting automatically"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Automated verification", score.StatusFail, 0, 6,
			"wire a hook that runs your test or lint command after edits"))
	}

	if settings != nil && len(settings.Permissions.Deny) > 0 {
		checks = append(checks, score.NewCheckResult(
			"Guardrails on secrets", score.StatusPass, 3, 3,
			"deny rules protect sensitive paths"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Guardrails on secrets", score.StatusWarn, 0, 3,
			"add deny rules for .env and credential files"))
	}

	return score.NewLayer("Verification Loops", checks)
}

func delegationPatternsProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult

	if len(ws.Agents) >= 2 {
		checks = append(checks, score.NewCheckResult(
			"Delegation repertoire", score.StatusPass, 4, 4,
			fmt.Sprintf("%d specialized agents", len(ws.Agents))))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Delegation repertoire", score.StatusWarn, 0, 4,
			"two or more focused agents let you parallelize research and review"))
	}

	tuned := 0
	for _, a := range ws.Agents {
		if a.Model != "" {
			tuned++
		}
	}
	if tuned > 0 {
		checks = append(checks, score.NewCheckResult(
			"Model-tuned agents", score.StatusPass, 3, 3,
			fmt.Sprintf("%d agents pick their own model", tuned)))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Model-tuned agents", score.StatusWarn, 0, 3,
			"route cheap delegable work to a smaller model per agent"))
	}

	return score.NewLayer("Delegation Patterns", checks)
}

// hasVerificationHook reports whether any hook command looks like a
// test, lint, or format step.
func hasVerificationHook(settings *claude.Settings) bool {
	if settings == nil {
		return false
	}
	verifiers := []string{"test", "lint", "fmt", "format", "vet", "check"}
	for _, matchers := range settings.Hooks {
		for _, m := range matchers {
			for _, h := range m.Hooks {
				cmd := strings.ToLower(h.Command)
				for _, v := range verifiers {
					if strings.Contains(cmd, v) {
						return true
					}
				}
			}
		}
	}
	return false
}
