package claude

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// refPattern matches @-style file references in instruction files,
// e.g. "@docs/architecture.md".
var refPattern = regexp.MustCompile(`(?m)@([\w./~-]+\.\w+)`)

// LoadWorkspace reads every auditable artifact under root. claudeHome is
// the user-level Claude data directory, used only for session activity
// signals; pass "" to skip them. Missing artifacts are recorded as absent,
// not returned as errors.
func LoadWorkspace(root, claudeHome string) (*Workspace, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("workspace root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace root %s is not a directory", root)
	}

	ws := &Workspace{Root: root}
	ws.Instructions = statMarkdown(filepath.Join(root, "CLAUDE.md"))

	ws.Memory = statMarkdown(filepath.Join(root, "MEMORY.md"))
	if !ws.Memory.Exists {
		ws.Memory = statMarkdown(filepath.Join(root, ".claude", "MEMORY.md"))
	}

	dotClaude := filepath.Join(root, ".claude")
	ws.Skills = loadSkills(filepath.Join(dotClaude, "skills"))
	ws.Agents = loadAgents(filepath.Join(dotClaude, "agents"))
	ws.Commands = listMarkdownNames(filepath.Join(dotClaude, "commands"))

	for _, name := range listMarkdownNames(filepath.Join(dotClaude, "rules")) {
		ws.Rules = append(ws.Rules, statMarkdown(filepath.Join(dotClaude, "rules", name+".md")))
	}

	ws.Settings = parseSettingsFile(filepath.Join(dotClaude, "settings.json"))
	ws.LocalSettings = parseSettingsFile(filepath.Join(dotClaude, "settings.local.json"))
	ws.SettingsChars = fileChars(filepath.Join(dotClaude, "settings.json")) +
		fileChars(filepath.Join(dotClaude, "settings.local.json"))

	ws.MCPServers = parseMCPServers(filepath.Join(root, ".mcp.json"))

	for _, dir := range []string{"docs", "knowledge"} {
		ws.KnowledgeChars += markdownChars(filepath.Join(root, dir))
	}

	if claudeHome != "" {
		ws.SessionCount, ws.LastSession = sessionActivity(claudeHome, root)
	}

	return ws, nil
}

// statMarkdown gathers line, heading, and reference counts for one file.
func statMarkdown(path string) FileStats {
	fs := FileStats{Path: path}
	info, err := os.Stat(path)
	if err != nil {
		return fs
	}
	fs.Exists = true
	fs.Size = info.Size()
	fs.ModTime = info.ModTime()

	data, err := os.ReadFile(path)
	if err != nil {
		return fs
	}
	content := string(data)
	fs.Lines = strings.Count(content, "\n")
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		fs.Lines++
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "#") {
			fs.Headings++
		}
	}
	for _, m := range refPattern.FindAllStringSubmatch(content, -1) {
		fs.References = append(fs.References, m[1])
	}
	return fs
}

// listMarkdownNames returns the basenames (without extension) of .md files
// directly under dir.
func listMarkdownNames(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	return names
}

// fileChars returns the byte length of a file, 0 when absent.
func fileChars(path string) int {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return int(info.Size())
}

// markdownChars sums the sizes of all .md files directly under dir.
func markdownChars(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	total := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		if info, err := e.Info(); err == nil {
			total += int(info.Size())
		}
	}
	return total
}

// sessionActivity counts session transcripts for this workspace under
// claudeHome/projects, using Claude Code's path-encoding scheme
// (every path separator becomes a dash).
func sessionActivity(claudeHome, root string) (int, time.Time) {
	encoded := strings.ReplaceAll(filepath.Clean(root), string(filepath.Separator), "-")
	dir := filepath.Join(claudeHome, "projects", encoded)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, time.Time{}
	}

	count := 0
	var last time.Time
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		count++
		if info, err := e.Info(); err == nil && info.ModTime().After(last) {
			last = info.ModTime()
		}
	}
	return count, last
}
