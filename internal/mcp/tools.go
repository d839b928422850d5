package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/blackwell-systems/claudepulse/internal/audit"
	"github.com/blackwell-systems/claudepulse/internal/budget"
	"github.com/blackwell-systems/claudepulse/internal/checks"
	"github.com/blackwell-systems/claudepulse/internal/claude"
	"github.com/blackwell-systems/claudepulse/internal/patterns"
	"github.com/blackwell-systems/claudepulse/internal/score"
	"github.com/blackwell-systems/claudepulse/internal/trend"
)

// CheckHealthResult is the response shape for the check_health tool.
type CheckHealthResult struct {
	Report   *score.Report      `json:"report"`
	Overall  int                `json:"overall"`
	Patterns []patterns.Pattern `json:"patterns"`
}

// AuditResult is the response shape for the audit_config tool.
type AuditResult struct {
	Findings []audit.Finding `json:"findings"`
	Count    int             `json:"count"`
}

var (
	rootSchema = json.RawMessage(`{"type":"object","properties":{"root":{"type":"string","description":"Workspace root to evaluate (default: current directory)"}},"additionalProperties":false}`)

	auditSchema = json.RawMessage(`{"type":"object","properties":{"root":{"type":"string","description":"Workspace root to evaluate (default: current directory)"},"categories":{"type":"array","items":{"type":"string"},"description":"Rule categories to run (default: all)"}},"additionalProperties":false}`)

	pulseSchema = json.RawMessage(`{"type":"object","properties":{"root":{"type":"string","description":"Workspace root to evaluate (default: current directory)"},"period":{"type":"string","enum":["since_last","7d","30d"],"description":"Comparison period (default: 7d)"}},"additionalProperties":false}`)
)

// addTools registers all four MCP tool handlers on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "check_health",
		Description: "Score the workspace across setup, usage, and fluency dimensions with graded layers and top fixes.",
		InputSchema: rootSchema,
		Handler:     s.handleCheckHealth,
	})
	s.registerTool(toolDef{
		Name:        "weekly_pulse",
		Description: "Trend deltas, tier crossings, and streaks against the run history.",
		InputSchema: pulseSchema,
		Handler:     s.handleWeeklyPulse,
	})
	s.registerTool(toolDef{
		Name:        "audit_config",
		Description: "Run configuration audit rules: broken references, conflicts, security, unused artifacts, performance.",
		InputSchema: auditSchema,
		Handler:     s.handleAuditConfig,
	})
	s.registerTool(toolDef{
		Name:        "context_pressure",
		Description: "Estimate the fixed token cost of each context surface and rank reduction opportunities.",
		InputSchema: rootSchema,
		Handler:     s.handleContextPressure,
	})
}

// rootArgs is the shared argument shape carrying a workspace root.
type rootArgs struct {
	Root string `json:"root"`
}

// loadWorkspace resolves and loads the workspace named in args, enforcing
// the root boundary before any file is read.
func (s *Server) loadWorkspace(args json.RawMessage) (*claude.Workspace, error) {
	var a rootArgs
	if len(args) > 0 && string(args) != "null" {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	root, err := s.policy.ResolveRoot(a.Root)
	if err != nil {
		return nil, err
	}
	return claude.LoadWorkspace(root, s.cfg.ClaudeHome)
}

// handleCheckHealth scores the workspace and maps its pattern coverage.
func (s *Server) handleCheckHealth(args json.RawMessage) (any, error) {
	ws, err := s.loadWorkspace(args)
	if err != nil {
		return nil, err
	}

	report := checks.BuildReportWith(context.Background(), checks.DefaultProviders(), ws, s.cfg.TopFixCount)
	return CheckHealthResult{
		Report:   report,
		Overall:  report.Overall(),
		Patterns: patterns.MapReport(report),
	}, nil
}

// handleWeeklyPulse compares the latest history snapshot to the period's
// comparison point. It reads history only; it never appends a run.
func (s *Server) handleWeeklyPulse(args json.RawMessage) (any, error) {
	var a struct {
		Root   string `json:"root"`
		Period string `json:"period"`
	}
	if len(args) > 0 && string(args) != "null" {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	period := trend.PeriodWeek
	if a.Period != "" {
		var err error
		period, err = trend.ParsePeriod(a.Period)
		if err != nil {
			return nil, err
		}
	}

	root, err := s.policy.ResolveRoot(a.Root)
	if err != nil {
		return nil, err
	}

	history, err := trend.NewHistory(s.cfg.HistoryPath(root)).Load()
	if err != nil {
		return nil, err
	}
	return trend.ComputePulse(history, period, time.Now().UTC()), nil
}

// handleAuditConfig runs the audit rules, optionally category-filtered.
func (s *Server) handleAuditConfig(args json.RawMessage) (any, error) {
	var a struct {
		Root       string   `json:"root"`
		Categories []string `json:"categories"`
	}
	if len(args) > 0 && string(args) != "null" {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	root, err := s.policy.ResolveRoot(a.Root)
	if err != nil {
		return nil, err
	}
	ws, err := claude.LoadWorkspace(root, s.cfg.ClaudeHome)
	if err != nil {
		return nil, err
	}

	findings := audit.Run(ws, a.Categories)
	return AuditResult{Findings: findings, Count: len(findings)}, nil
}

// handleContextPressure estimates fixed token costs for the workspace.
func (s *Server) handleContextPressure(args json.RawMessage) (any, error) {
	ws, err := s.loadWorkspace(args)
	if err != nil {
		return nil, err
	}
	return budget.Estimate(budget.InputsFromWorkspace(ws), s.cfg.ContextWindow), nil
}
