package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hopekeeper/internal/client/syncqueue"
	"github.com/dmitrijs2005/hopekeeper/internal/entities"
	"github.com/dmitrijs2005/hopekeeper/internal/export"
)

func TestProgress_AwardsOnce(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOnline)
	require.NotNil(t, ta.store.AddMoodEntry(context.Background(), entities.MoodEntry{Mood: 6, Anxiety: 3}))

	require.NoError(t, ta.run(t, "progress"))
	require.NoError(t, ta.run(t, "progress"))

	assert.Equal(t, 1, ta.backend.count(entities.Achievements))
	out := ta.out.String()
	assert.Equal(t, 1, strings.Count(out, "New achievement: First Steps!"))
	assert.Contains(t, out, "Days tracked:        1")
	assert.Contains(t, out, "Average mood:        6.0/10")
}

func TestProgress_OfflineDoesNotAward(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOnline)
	require.NotNil(t, ta.store.AddMoodEntry(context.Background(), entities.MoodEntry{Mood: 6, Anxiety: 3}))
	ta.setMode(ModeOffline)

	require.NoError(t, ta.run(t, "progress"))

	assert.Zero(t, ta.backend.count(entities.Achievements))
	assert.Contains(t, ta.out.String(), "🌱 First Steps")
}

func TestExport(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOnline)
	ta.now = func() time.Time { return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) }
	require.NotNil(t, ta.store.AddMoodEntry(context.Background(), entities.MoodEntry{Mood: 6, Anxiety: 3}))

	require.NoError(t, ta.run(t, "export"))

	path := filepath.Join(ta.config.DataDir, "hope-for-ocd-data-2025-06-02.json")
	assert.Contains(t, ta.out.String(), "Exported to "+path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		UserEmail string                       `json:"userEmail"`
		Data      map[string][]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "alice@example.com", doc.UserEmail)
	assert.Len(t, doc.Data["moodEntries"], 1)
	assert.NotContains(t, doc.Data, "aiSessions")
}

func TestExport_CSVAndErrors(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOffline)
	ta.now = func() time.Time { return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) }

	require.NoError(t, ta.run(t, "export", "-f", "csv", "-i", "mood,sleep"))
	assert.FileExists(t, filepath.Join(ta.config.DataDir, export.FileName(export.FormatCSV, ta.now())))

	assert.Error(t, ta.run(t, "export", "-f", "pdf"))
	assert.ErrorIs(t, ta.run(t, "export", "-i", ""), export.ErrNothingSelected)
}

func TestSync_Offline(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOffline)
	_, err := ta.queue.Enqueue(context.Background(), "u1", syncqueue.TypeMoodEntry, entities.MoodEntry{Mood: 2, Anxiety: 8})
	require.NoError(t, err)

	err = ta.run(t, "sync")
	assert.ErrorIs(t, err, errNeedsServer)
	assert.ErrorContains(t, err, "1 change(s) waiting")
}

func TestSync_ReplaysQueue(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.signIn(ModeOffline)
	_, err := ta.queue.Enqueue(ctx, "u1", syncqueue.TypeMoodEntry, entities.MoodEntry{Mood: 2, Anxiety: 8})
	require.NoError(t, err)
	_, err = ta.queue.Enqueue(ctx, "u1", syncqueue.TypeSleepSession, entities.SleepSession{SessionType: "rain", Completed: true})
	require.NoError(t, err)

	ta.setMode(ModeOnline)
	require.NoError(t, ta.run(t, "sync"))

	assert.Equal(t, 0, ta.queue.Len(ctx, "u1"))
	assert.Equal(t, 1, ta.backend.count(entities.MoodEntries))
	assert.Equal(t, 1, ta.backend.count(entities.SleepSessions))
	data := ta.store.Snapshot()
	assert.Len(t, data.MoodEntries, 1)
	assert.Len(t, data.SleepSessions, 1)
	assert.Contains(t, ta.out.String(), "Sent 2 change(s).")
	assert.Contains(t, ta.out.String(), "Up to date.")
}

func TestSync_BackendDownKeepsQueue(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.signIn(ModeOnline)
	_, err := ta.queue.Enqueue(ctx, "u1", syncqueue.TypeMoodEntry, entities.MoodEntry{Mood: 2, Anxiety: 8})
	require.NoError(t, err)
	ta.backend.fail = true

	err = ta.run(t, "sync")
	assert.EqualError(t, err, "could not refresh your data")
	assert.Equal(t, 1, ta.queue.Len(ctx, "u1"))
}
