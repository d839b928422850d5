package trend

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// History reads and appends the JSON snapshot log at Path. The file is a
// JSON array of RunSnapshot, oldest first. Writes go through a temp file
// and an atomic rename so a racing reader never observes a truncated log.
type History struct {
	Path string
}

// NewHistory returns a History backed by the given file path.
func NewHistory(path string) *History {
	return &History{Path: path}
}

// Load returns all parseable snapshots, oldest first. A missing file is an
// empty history. Individual entries that fail to parse are skipped rather
// than failing the whole load.
func (h *History) Load() ([]RunSnapshot, error) {
	data, err := os.ReadFile(h.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// The whole file is unreadable. Treat it as empty rather than
		// crashing the trend computation; the next append rewrites it.
		return nil, nil
	}

	snapshots := make([]RunSnapshot, 0, len(raw))
	for _, entry := range raw {
		var s RunSnapshot
		if err := json.Unmarshal(entry, &s); err != nil {
			continue
		}
		if s.Timestamp.IsZero() {
			continue
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}

// Append adds a snapshot to the end of the history and rewrites the file
// atomically. Last writer wins if two invocations race.
func (h *History) Append(snap RunSnapshot) error {
	snapshots, err := h.Load()
	if err != nil {
		return err
	}
	snapshots = append(snapshots, snap)

	data, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	dir := filepath.Dir(h.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".pulse-history-*")
	if err != nil {
		return fmt.Errorf("creating temp history: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing history: %w", err)
	}

	if err := os.Rename(tmpName, h.Path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing history: %w", err)
	}
	return nil
}
