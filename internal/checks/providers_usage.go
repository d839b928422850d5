package checks

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/claudepulse/internal/budget"
	"github.com/blackwell-systems/claudepulse/internal/claude"
	"github.com/blackwell-systems/claudepulse/internal/score"
)

func sessionActivityProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult

	if ws.SessionCount > 0 {
		checks = append(checks, score.NewCheckResult(
			"Sessions recorded", score.StatusPass, 6, 6,
			fmt.Sprintf("%d sessions", ws.SessionCount)))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Sessions recorded", score.StatusFail, 0, 6,
			"no Claude sessions found for this workspace"))
	}

	if recentWithin(ws.LastSession, 7*24*time.Hour) {
		checks = append(checks, score.NewCheckResult(
			"Recent activity", score.StatusPass, 6, 6,
			"active within the last week"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Recent activity", score.StatusWarn, 0, 6,
			"no sessions in the last 7 days"))
	}

	if ws.SessionCount >= 10 {
		checks = append(checks, score.NewCheckResult(
			"Sustained usage", score.StatusPass, 3, 3,
			"ten or more sessions"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Sustained usage", score.StatusWarn, 0, 3,
			"usage is still sporadic"))
	}

	return score.NewLayer("Session Activity", checks)
}

func commandUsageProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult

	if len(ws.Commands) > 0 {
		checks = append(checks, score.NewCheckResult(
			"Custom commands", score.StatusPass, 5, 5,
			fmt.Sprintf("%d slash commands", len(ws.Commands))))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Custom commands", score.StatusFail, 0, 5,
			"capture repeated prompts as slash commands in .claude/commands/"))
	}

	if len(ws.Commands) >= 3 {
		checks = append(checks, score.NewCheckResult(
			"Command vocabulary", score.StatusPass, 3, 3,
			"three or more commands"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Command vocabulary", score.StatusWarn, 0, 3,
			"a broader command vocabulary pays off on repetitive work"))
	}

	return score.NewLayer("Command Usage", checks)
}

func memoryFreshnessProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult

	if ws.Memory.Exists {
		checks = append(checks, score.NewCheckResult(
			"Memory file present", score.StatusPass, 5, 5,
			fmt.Sprintf("%d lines", ws.Memory.Lines)))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Memory file present", score.StatusFail, 0, 5,
			"add a MEMORY.md so lessons persist between sessions"))
	}

	if ws.Memory.Exists && recentWithin(ws.Memory.ModTime, 14*24*time.Hour) {
		checks = append(checks, score.NewCheckResult(
			"Memory recently updated", score.StatusPass, 5, 5,
			"updated within two weeks"))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Memory recently updated", score.StatusWarn, 0, 5,
			"memory has gone stale; append what you learned this week"))
	}

	if ws.Memory.Lines <= budget.MemoryLineCap {
		checks = append(checks, score.NewCheckResult(
			"Memory within line cap", score.StatusPass, 3, 3,
			fmt.Sprintf("%d of %d lines", ws.Memory.Lines, budget.MemoryLineCap)))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Memory within line cap", score.StatusFail, 0, 3,
			fmt.Sprintf("memory exceeds the %d-line cap; compact it", budget.MemoryLineCap)))
	}

	return score.NewLayer("Memory Freshness", checks)
}

func pluginAdoptionProvider(ws *claude.Workspace) score.Layer {
	var checks []score.CheckResult
	settings := ws.MergedSettings()

	enabled := 0
	if settings != nil {
		for _, on := range settings.EnabledPlugins {
			if on {
				enabled++
			}
		}
	}

	if enabled > 0 {
		checks = append(checks, score.NewCheckResult(
			"Plugins enabled", score.StatusPass, 4, 4,
			fmt.Sprintf("%d plugins", enabled)))
	} else {
		checks = append(checks, score.NewCheckResult(
			"Plugins enabled", score.StatusWarn, 0, 4,
			"no plugins enabled; browse the marketplace for your stack"))
	}

	return score.NewLayer("Plugin Adoption", checks)
}

// recentWithin reports whether t falls inside the trailing window.
func recentWithin(t time.Time, window time.Duration) bool {
	if t.IsZero() {
		return false
	}
	return time.Since(t) <= window
}
