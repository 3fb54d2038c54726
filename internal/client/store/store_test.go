package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hopekeeper/internal/entities"
	"github.com/dmitrijs2005/hopekeeper/internal/logging"
)

var errBackend = errors.New("backend down")

type call struct {
	op, collection, id string
}

type fakeBackend struct {
	mu      sync.Mutex
	rows    map[string][]json.RawMessage
	failOn  map[string]bool
	calls   []call
	nextID  int
	deleted bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{rows: map[string][]json.RawMessage{}, failOn: map[string]bool{}, deleted: true}
}

func (f *fakeBackend) record(op, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op, collection, id})
	if f.failOn[op+":"+collection] {
		return errBackend
	}
	return nil
}

func (f *fakeBackend) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func (f *fakeBackend) List(_ context.Context, collection string) ([]json.RawMessage, error) {
	if err := f.record("list", collection, ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[collection], nil
}

func (f *fakeBackend) Insert(_ context.Context, collection string, row any) (json.RawMessage, error) {
	if err := f.record("insert", collection, ""); err != nil {
		return nil, err
	}
	var m map[string]any
	b, _ := json.Marshal(row)
	_ = json.Unmarshal(b, &m)

	f.mu.Lock()
	f.nextID++
	m["id"] = fmt.Sprintf("id-%d", f.nextID)
	m["user_id"] = "u1"
	f.mu.Unlock()

	return json.Marshal(m)
}

func (f *fakeBackend) Update(_ context.Context, collection, id string, patch any) (json.RawMessage, error) {
	if err := f.record("update", collection, id); err != nil {
		return nil, err
	}
	var m map[string]any
	b, _ := json.Marshal(patch)
	_ = json.Unmarshal(b, &m)
	m["id"] = id
	return json.Marshal(m)
}

func (f *fakeBackend) Delete(_ context.Context, collection, id string) (bool, error) {
	if err := f.record("delete", collection, id); err != nil {
		return false, err
	}
	return f.deleted, nil
}

type logEntry struct {
	msg  string
	args []any
}

type recLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recLogger) add(msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{msg, args})
}
func (l *recLogger) Info(_ context.Context, msg string, args ...any)  { l.add(msg, args) }
func (l *recLogger) Warn(_ context.Context, msg string, args ...any)  { l.add(msg, args) }
func (l *recLogger) Error(_ context.Context, msg string, args ...any) { l.add(msg, args) }
func (l *recLogger) With(...any) logging.Logger                       { return l }

func (l *recLogger) mentions(text string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if strings.Contains(fmt.Sprint(e.args...), text) {
			return true
		}
	}
	return false
}

func newStore(t *testing.T) (*Store, *fakeBackend, *recLogger) {
	t.Helper()
	b := newFakeBackend()
	l := &recLogger{}
	s := New(b, l)
	s.SetIdentity("u1")
	return s, b, l
}

func TestLoadAll_ReplacesEverything(t *testing.T) {
	s, b, _ := newStore(t)
	b.rows[entities.MoodEntries] = []json.RawMessage{
		json.RawMessage(`{"id":"m2","mood":6}`),
		json.RawMessage(`{"id":"m1","mood":3}`),
	}
	b.rows[entities.UserPrefs] = []json.RawMessage{json.RawMessage(`{"id":"p1","difficulty_level":2}`)}
	b.rows[entities.ChatSessions] = []json.RawMessage{json.RawMessage(`{"id":"c1","messages":[]}`)}

	require.True(t, s.LoadAll(context.Background()))

	d := s.Snapshot()
	require.Len(t, d.MoodEntries, 2)
	assert.Equal(t, "m2", d.MoodEntries[0].ID)
	require.NotNil(t, d.Preferences)
	assert.Equal(t, 2, d.Preferences.DifficultyLevel)
	assert.Len(t, d.ChatSessions, 1)
	assert.Empty(t, d.ThoughtRecords)
	assert.Equal(t, len(entities.Collections), b.count("list"))
}

func TestLoadAll_FailureKeepsCache(t *testing.T) {
	s, b, l := newStore(t)
	b.rows[entities.MoodEntries] = []json.RawMessage{json.RawMessage(`{"id":"m1"}`)}
	require.True(t, s.LoadAll(context.Background()))

	b.rows[entities.MoodEntries] = []json.RawMessage{json.RawMessage(`{"id":"m9"}`)}
	b.failOn["list:"+entities.SleepSessions] = true

	assert.False(t, s.Refresh(context.Background()))
	d := s.Snapshot()
	require.Len(t, d.MoodEntries, 1)
	assert.Equal(t, "m1", d.MoodEntries[0].ID)
	assert.True(t, l.mentions(entities.SleepSessions))
}

func TestLoadAll_WithoutIdentityClears(t *testing.T) {
	s, b, _ := newStore(t)
	b.rows[entities.MoodEntries] = []json.RawMessage{json.RawMessage(`{"id":"m1"}`)}
	require.True(t, s.LoadAll(context.Background()))

	s.SetIdentity("")
	assert.Empty(t, s.Snapshot().MoodEntries)

	calls := b.count("list")
	assert.False(t, s.LoadAll(context.Background()))
	assert.Equal(t, calls, b.count("list"))
}

func TestSetIdentity_SwitchUserClears(t *testing.T) {
	s, b, _ := newStore(t)
	b.rows[entities.MoodEntries] = []json.RawMessage{json.RawMessage(`{"id":"m1"}`)}
	require.True(t, s.LoadAll(context.Background()))

	s.SetIdentity("u1")
	assert.Len(t, s.Snapshot().MoodEntries, 1)

	s.SetIdentity("u2")
	assert.Empty(t, s.Snapshot().MoodEntries)
	assert.Equal(t, "u2", s.UserID())
}

func TestAdd_PrependsStoredRow(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	first := s.AddMoodEntry(ctx, entities.MoodEntry{Mood: 3, Anxiety: 8})
	second := s.AddMoodEntry(ctx, entities.MoodEntry{Mood: 7, Triggers: entities.StringList{"Work stress"}})
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, "u1", second.UserID)

	d := s.Snapshot()
	require.Len(t, d.MoodEntries, 2)
	assert.Equal(t, second.ID, d.MoodEntries[0].ID)
	assert.Equal(t, []string{"Work stress"}, []string(d.MoodEntries[0].Triggers))

	assert.NotNil(t, s.AddThoughtRecord(ctx, entities.ThoughtRecord{Situation: "s"}))
	assert.NotNil(t, s.AddErpSession(ctx, entities.ErpSession{Exposure: "e"}))
	assert.NotNil(t, s.AddMeditationSession(ctx, entities.MeditationSession{SessionType: "guided"}))
	assert.NotNil(t, s.AddCrisisLog(ctx, entities.CrisisLog{ToolUsed: "grounding"}))
	assert.NotNil(t, s.AddSleepSession(ctx, entities.SleepSession{SessionType: "story"}))
	assert.NotNil(t, s.AddAchievement(ctx, entities.Achievement{Title: "First Steps"}))
	assert.NotNil(t, s.AddEducationProgress(ctx, entities.EducationProgress{ContentID: "what-is-ocd"}))
	assert.NotNil(t, s.AddChatSession(ctx, entities.ChatSession{SessionType: entities.SessionTypeChat}))

	d = s.Snapshot()
	assert.Len(t, d.ThoughtRecords, 1)
	assert.Len(t, d.ErpSessions, 1)
	assert.Len(t, d.MeditationSessions, 1)
	assert.Len(t, d.CrisisLogs, 1)
	assert.Len(t, d.SleepSessions, 1)
	assert.Len(t, d.Achievements, 1)
	assert.Len(t, d.EducationProgress, 1)
	assert.Len(t, d.ChatSessions, 1)
}

func TestAdd_FailureLogsAndReturnsNil(t *testing.T) {
	s, b, l := newStore(t)
	b.failOn["insert:"+entities.CrisisLogs] = true

	assert.Nil(t, s.AddCrisisLog(context.Background(), entities.CrisisLog{ToolUsed: "x"}))
	assert.Empty(t, s.Snapshot().CrisisLogs)
	assert.True(t, l.mentions(entities.CrisisLogs))
}

func TestAdd_WithoutIdentity(t *testing.T) {
	b := newFakeBackend()
	s := New(b, &recLogger{})

	assert.Nil(t, s.AddMoodEntry(context.Background(), entities.MoodEntry{Mood: 5}))
	assert.False(t, s.DeleteMoodEntry(context.Background(), "m1"))
	assert.Zero(t, b.count("insert"))
	assert.Zero(t, b.count("delete"))
}

func TestSavePreferences(t *testing.T) {
	s, _, _ := newStore(t)

	p := s.SavePreferences(context.Background(), entities.UserPreferences{ReminderFrequency: "daily"})
	require.NotNil(t, p)
	require.NotNil(t, s.Snapshot().Preferences)
	assert.Equal(t, "daily", s.Snapshot().Preferences.ReminderFrequency)
}

func TestUpdateChatSession_ReplacesInPlace(t *testing.T) {
	s, b, _ := newStore(t)
	b.rows[entities.ChatSessions] = []json.RawMessage{
		json.RawMessage(`{"id":"c2","session_summary":"two"}`),
		json.RawMessage(`{"id":"c1","session_summary":"one"}`),
	}
	require.True(t, s.LoadAll(context.Background()))

	summary := "updated"
	got := s.UpdateChatSession(context.Background(), "c1", entities.ChatSessionPatch{SessionSummary: &summary})
	require.NotNil(t, got)

	d := s.Snapshot()
	require.Len(t, d.ChatSessions, 2)
	assert.Equal(t, "c1", d.ChatSessions[1].ID)
	assert.Equal(t, "updated", d.ChatSessions[1].SessionSummary)

	b.failOn["update:"+entities.ChatSessions] = true
	assert.Nil(t, s.UpdateChatSession(context.Background(), "c1", entities.ChatSessionPatch{SessionSummary: &summary}))
}

func TestCompleteErpSession(t *testing.T) {
	s, b, _ := newStore(t)
	b.rows[entities.ErpSessions] = []json.RawMessage{
		json.RawMessage(`{"id":"e1","completed":false,"exposure":"door"}`),
		json.RawMessage(`{"id":"e2","completed":true}`),
	}
	require.True(t, s.LoadAll(context.Background()))
	ctx := context.Background()

	// already completed: no backend call
	got := s.CompleteErpSession(ctx, "e2", nil)
	require.NotNil(t, got)
	assert.True(t, got.Completed)
	assert.Zero(t, b.count("update"))

	after := 3
	got = s.CompleteErpSession(ctx, "e1", &after)
	require.NotNil(t, got)
	assert.True(t, got.Completed)
	assert.Equal(t, 3, got.AnxietyAfter)
	assert.Equal(t, 1, b.count("update"))

	d := s.Snapshot()
	require.Len(t, d.ErpSessions, 2)
	assert.True(t, d.ErpSessions[0].Completed)

	// completing again is a no-op and never inserts
	s.CompleteErpSession(ctx, "e1", nil)
	assert.Equal(t, 1, b.count("update"))
	assert.Zero(t, b.count("insert"))
}

func TestDelete(t *testing.T) {
	s, b, _ := newStore(t)
	b.rows[entities.MoodEntries] = []json.RawMessage{json.RawMessage(`{"id":"m1"}`), json.RawMessage(`{"id":"m2"}`)}
	b.rows[entities.ThoughtRecords] = []json.RawMessage{json.RawMessage(`{"id":"t1"}`)}
	b.rows[entities.ErpSessions] = []json.RawMessage{json.RawMessage(`{"id":"e1"}`)}
	require.True(t, s.LoadAll(context.Background()))
	ctx := context.Background()

	assert.True(t, s.DeleteMoodEntry(ctx, "m1"))
	assert.True(t, s.DeleteThoughtRecord(ctx, "t1"))
	assert.True(t, s.DeleteErpSession(ctx, "e1"))

	d := s.Snapshot()
	require.Len(t, d.MoodEntries, 1)
	assert.Equal(t, "m2", d.MoodEntries[0].ID)
	assert.Empty(t, d.ThoughtRecords)
	assert.Empty(t, d.ErpSessions)

	b.deleted = false
	assert.False(t, s.DeleteMoodEntry(ctx, "m2"))
	assert.Len(t, s.Snapshot().MoodEntries, 1)

	b.failOn["delete:"+entities.MoodEntries] = true
	assert.False(t, s.DeleteMoodEntry(ctx, "m2"))
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _, _ := newStore(t)
	require.NotNil(t, s.AddMoodEntry(context.Background(), entities.MoodEntry{Mood: 4}))

	d := s.Snapshot()
	d.MoodEntries[0].Mood = 10
	assert.Equal(t, 4, s.Snapshot().MoodEntries[0].Mood)
}

func TestConcurrentAccess(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AddMoodEntry(ctx, entities.MoodEntry{Mood: 5})
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			s.LoadAll(ctx)
		}()
	}
	wg.Wait()
}
