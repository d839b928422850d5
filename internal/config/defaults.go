// Package config provides configuration loading and defaults for claudepulse.
package config

// DefaultClaudeHome is the default location of Claude Code's data directory.
const DefaultClaudeHome = "~/.claude"

// DefaultConfigDir is the default location for claudepulse configuration.
const DefaultConfigDir = "~/.config/claudepulse"

// DefaultDBName is the filename for the SQLite snapshot archive.
const DefaultDBName = "claudepulse.db"

// DefaultHistoryFile is the history filename, relative to the audited
// workspace root.
const DefaultHistoryFile = ".claude/pulse-history.json"

// DefaultTopFixCount is how many recommendations reports carry.
const DefaultTopFixCount = 5

// DefaultContextWindow is the model context window used for budget math.
const DefaultContextWindow = 200_000

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
}
