package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

func TestMoodAdd_Online(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOnline)
	ta.input("0", "7", "4", "1, counting tiles", "Long day", "at work", "")

	require.NoError(t, ta.run(t, "mood", "add"))

	entries := ta.store.Snapshot().MoodEntries
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, 7, e.Mood)
	assert.Equal(t, 4, e.Anxiety)
	assert.Equal(t, entities.StringList{ta.catalog.Tracking.Triggers[0], "counting tiles"}, e.Triggers)
	assert.Equal(t, "Long day\nat work", e.Notes)
	assert.Contains(t, ta.out.String(), "Mood logged.")
	assert.Equal(t, 0, ta.queue.Len(context.Background(), "u1"))
}

func TestMoodAdd_OfflineIsQueued(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOffline)
	ta.input("5", "5", "", "")

	require.NoError(t, ta.run(t, "mood", "add"))

	assert.Equal(t, 1, ta.queue.Len(context.Background(), "u1"))
	assert.Zero(t, ta.backend.count(entities.MoodEntries))
	assert.Empty(t, ta.store.Snapshot().MoodEntries)
	assert.Contains(t, ta.out.String(), "Saved offline.")
}

func TestMoodAdd_BackendFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOnline)
	ta.backend.fail = true
	ta.input("5", "5", "", "")

	assert.ErrorIs(t, ta.run(t, "mood", "add"), errNotSaved)
}

func TestThoughtAdd(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOnline)
	ta.input(
		"Left the house",
		"The stove is on",
		"Panic",
		"I cooked this morning",
		"I checked it twice",
		"I have no real reason to think it is on",
		"Calmer",
	)

	require.NoError(t, ta.run(t, "thought", "add"))

	records := ta.store.Snapshot().ThoughtRecords
	require.Len(t, records, 1)
	assert.Equal(t, "The stove is on", records[0].AutomaticThought)
	assert.Equal(t, "Calmer", records[0].NewEmotion)

	ta.out.Reset()
	require.NoError(t, ta.run(t, "thought", "list"))
	assert.Contains(t, ta.out.String(), "balanced: I have no real reason to think it is on (Calmer)")
}

func TestThoughtAdd_RequiresSituationAndThought(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOnline)
	ta.input("Left the house", "", "", "", "", "", "")

	assert.Error(t, ta.run(t, "thought", "add"))
	assert.Zero(t, ta.backend.count(entities.ThoughtRecords))
}

func TestErp_StartAndComplete(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOnline)
	ta.input("2", "8", "20")

	require.NoError(t, ta.run(t, "erp", "start"))
	sessions := ta.store.Snapshot().ErpSessions
	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.Equal(t, ta.catalog.Tracking.Exposures[1], s.Exposure)
	assert.Equal(t, 8, s.AnxietyBefore)
	assert.Equal(t, 20, s.Duration)
	assert.False(t, s.Completed)

	ta.input("3")
	require.NoError(t, ta.run(t, "erp", "complete", s.ID))

	s = ta.store.Snapshot().ErpSessions[0]
	assert.True(t, s.Completed)
	assert.Equal(t, 3, s.AnxietyAfter)
	assert.Contains(t, ta.out.String(), "Anxiety went from 8 to 3.")
}

func TestErp_StartNeedsExposure(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOnline)
	ta.input("")

	assert.Error(t, ta.run(t, "erp", "start"))
}

func TestErp_OnlineOnlyOperations(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOffline)

	assert.ErrorIs(t, ta.run(t, "erp", "complete", "id-1"), errNeedsServer)
	assert.ErrorIs(t, ta.run(t, "erp", "delete", "id-1"), errNeedsServer)
	assert.ErrorIs(t, ta.run(t, "mood", "delete", "id-1"), errNeedsServer)
	assert.ErrorIs(t, ta.run(t, "thought", "delete", "id-1"), errNeedsServer)
}

func TestMoodDelete(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOnline)
	row := ta.store.AddMoodEntry(context.Background(), entities.MoodEntry{Mood: 3, Anxiety: 9})
	require.NotNil(t, row)

	require.NoError(t, ta.run(t, "mood", "delete", row.ID))
	assert.Empty(t, ta.store.Snapshot().MoodEntries)

	assert.Error(t, ta.run(t, "mood", "delete", row.ID))
}

func TestLists_Empty(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(ModeOnline)

	require.NoError(t, ta.run(t, "mood", "list"))
	require.NoError(t, ta.run(t, "thought", "list"))
	require.NoError(t, ta.run(t, "erp", "list"))

	out := ta.out.String()
	assert.Contains(t, out, "No mood entries yet.")
	assert.Contains(t, out, "No thought records yet.")
	assert.Contains(t, out, "No ERP sessions yet.")
}
