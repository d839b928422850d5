package trend

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryLoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "nope.json"))
	snaps, err := h.Load()
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestHistoryAppendAndLoadRoundTrip(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history.json"))

	first := RunSnapshot{Timestamp: time.Now().UTC().Truncate(time.Second), OverallPct: 40}
	second := RunSnapshot{Timestamp: first.Timestamp.Add(time.Hour), OverallPct: 55}

	require.NoError(t, h.Append(first))
	require.NoError(t, h.Append(second))

	snaps, err := h.Load()
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	// Oldest first, appended entries never mutate prior ones.
	assert.Equal(t, 40, snaps[0].OverallPct)
	assert.Equal(t, 55, snaps[1].OverallPct)
}

func TestHistorySkipsMalformedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	content := `[
		{"timestamp":"2026-01-02T10:00:00Z","overall_pct":30},
		{"timestamp":"not a time","overall_pct":99},
		"garbage",
		{"timestamp":"2026-01-03T10:00:00Z","overall_pct":45}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	snaps, err := NewHistory(path).Load()
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 30, snaps[0].OverallPct)
	assert.Equal(t, 45, snaps[1].OverallPct)
}

func TestHistoryUnreadableFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	snaps, err := NewHistory(path).Load()
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestHistoryAppendCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.json")
	h := NewHistory(path)
	require.NoError(t, h.Append(RunSnapshot{Timestamp: time.Now(), OverallPct: 10}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestHistoryAppendLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	h := NewHistory(filepath.Join(dir, "history.json"))
	require.NoError(t, h.Append(RunSnapshot{Timestamp: time.Now(), OverallPct: 10}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "history.json", entries[0].Name())
}
