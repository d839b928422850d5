package claude

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// skillFrontmatter is the YAML header of a SKILL.md or agent file.
type skillFrontmatter struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Model        string `yaml:"model"`
	AllowedTools string `yaml:"allowed-tools"`
}

// loadSkills parses every .claude/skills/<name>/SKILL.md under dir.
// Unparseable skills are skipped; a skill with no frontmatter name falls
// back to its directory name.
func loadSkills(dir string) []Skill {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var skills []Skill
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name(), "SKILL.md")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		fm, body := splitFrontmatter(string(data))
		skill := Skill{
			Name:      e.Name(),
			Path:      path,
			BodyChars: len(body),
		}
		if fm.Name != "" {
			skill.Name = fm.Name
		}
		skill.Description = fm.Description
		if fm.AllowedTools != "" {
			for _, tool := range strings.Split(fm.AllowedTools, ",") {
				skill.AllowedTools = append(skill.AllowedTools, strings.TrimSpace(tool))
			}
		}

		// Sibling files are the skill's on-demand detail layer.
		siblings, err := os.ReadDir(filepath.Join(dir, e.Name()))
		if err == nil {
			for _, s := range siblings {
				if !s.IsDir() && s.Name() != "SKILL.md" {
					skill.LinkedFiles++
				}
			}
		}
		skills = append(skills, skill)
	}
	return skills
}

// loadAgents parses every .claude/agents/<name>.md under dir.
func loadAgents(dir string) []Agent {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var agents []Agent
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		fm, body := splitFrontmatter(string(data))
		agent := Agent{
			Name:      strings.TrimSuffix(e.Name(), ".md"),
			Path:      path,
			BodyChars: len(body),
		}
		if fm.Name != "" {
			agent.Name = fm.Name
		}
		agent.Description = fm.Description
		agent.Model = fm.Model
		agents = append(agents, agent)
	}
	return agents
}

// splitFrontmatter separates a leading "---" YAML block from the markdown
// body. Malformed or absent frontmatter yields zero values and the whole
// content as body.
func splitFrontmatter(content string) (skillFrontmatter, string) {
	var fm skillFrontmatter
	if !strings.HasPrefix(content, "---\n") {
		return fm, content
	}
	rest := content[4:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return fm, content
	}

	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return skillFrontmatter{}, content
	}
	body := rest[end+4:]
	return fm, strings.TrimPrefix(body, "\n")
}
