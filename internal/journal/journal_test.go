package journal

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/themectl/internal/fanout"
	"github.com/bnema/themectl/internal/orchestrator"
)

func openTestJournal(t *testing.T, maxEntries int) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.sqlite"), maxEntries, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournal_RecordAndRecent(t *testing.T) {
	j := openTestJournal(t, 100)

	j.RecordApply(orchestrator.ApplyRecord{
		RunID:    "run-1",
		ThemeID:  "nord",
		Trigger:  orchestrator.TriggerManual,
		OK:       true,
		Duration: 120 * time.Millisecond,
		Fanout: fanout.Report{
			RunID: "run-1",
			Results: []fanout.Result{
				{App: "kitty", OK: true, Detail: "reloaded"},
			},
		},
	})

	entries, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "run-1", e.RunID)
	assert.Equal(t, "nord", e.ThemeID)
	assert.Equal(t, string(orchestrator.TriggerManual), e.Trigger)
	assert.True(t, e.OK)
	assert.Equal(t, 120*time.Millisecond, e.Duration)
	assert.Contains(t, e.FanoutJSON, "kitty")
	assert.WithinDuration(t, time.Now(), e.CreatedAt, time.Minute)
}

func TestJournal_FailedApplyRecorded(t *testing.T) {
	j := openTestJournal(t, 100)

	j.RecordApply(orchestrator.ApplyRecord{
		ThemeID:    "missing",
		Trigger:    orchestrator.TriggerSchedule,
		OK:         false,
		FatalError: "theme not found: missing",
	})

	entries, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].OK)
	assert.Equal(t, "theme not found: missing", entries[0].FatalError)
	// A run id was generated even though none was supplied.
	assert.NotEmpty(t, entries[0].RunID)
}

func TestJournal_PruneKeepsNewest(t *testing.T) {
	j := openTestJournal(t, 3)

	for i := 0; i < 6; i++ {
		j.RecordApply(orchestrator.ApplyRecord{
			RunID:   fmt.Sprintf("run-%d", i),
			ThemeID: fmt.Sprintf("theme-%d", i),
			Trigger: orchestrator.TriggerManual,
			OK:      true,
		})
	}

	entries, err := j.Recent(10)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestJournal_RecentLimit(t *testing.T) {
	j := openTestJournal(t, 100)

	for i := 0; i < 5; i++ {
		j.RecordApply(orchestrator.ApplyRecord{
			RunID:   fmt.Sprintf("run-%d", i),
			ThemeID: "nord",
			Trigger: orchestrator.TriggerManual,
			OK:      true,
		})
	}

	entries, err := j.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
