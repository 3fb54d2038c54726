package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hopekeeper/internal/common"
)

func TestStringList_ValueScan(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringList{"Work stress", "Health concerns"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Work stress","Health concerns"]`, v)

	var got StringList
	require.NoError(t, got.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, got)

	got = nil
	require.NoError(t, got.Scan(`["c"]`))
	assert.Equal(t, StringList{"c"}, got)

	got = nil
	require.NoError(t, got.Scan(nil))
	assert.Nil(t, got)

	assert.Error(t, got.Scan(42))
}

func TestMessages_RoundTripThroughColumn(t *testing.T) {
	in := Messages{
		{ID: "1", Type: MessageTypeUser, Content: "hi"},
		{ID: "2", Type: MessageTypeAI, Content: "hello", Category: "general", Emotion: "empathetic"},
	}
	v, err := in.Value()
	require.NoError(t, err)

	var out Messages
	require.NoError(t, out.Scan(v))
	require.Len(t, out, 2)
	assert.Equal(t, "hello", out[1].Content)
	assert.Equal(t, "empathetic", out[1].Emotion)
}

func TestObject_EmptyValue(t *testing.T) {
	v, err := Object(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	v, err = ObjectList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestOrderColumn(t *testing.T) {
	assert.Equal(t, "earned_at", OrderColumn(Achievements))
	assert.Equal(t, "updated_at", OrderColumn(EducationProgresses))
	assert.Equal(t, "created_at", OrderColumn(MoodEntries))
	assert.Equal(t, "created_at", OrderColumn(ChatSessions))
}

func TestKnownAndUpdatable(t *testing.T) {
	assert.Len(t, Collections, 11)
	for _, c := range Collections {
		assert.True(t, Known(c), c)
	}
	assert.False(t, Known("users"))

	assert.True(t, Updatable(ChatSessions))
	assert.True(t, Updatable(ErpSessions))
	assert.False(t, Updatable(MoodEntries))
}

func TestPatchSetMap(t *testing.T) {
	done := true
	assert.Equal(t, map[string]any{"completed": true}, ErpSessionPatch{Completed: &done}.SetMap())
	assert.Empty(t, ErpSessionPatch{}.SetMap())

	summary := "Therapeutic conversation - 1 exchanges. Mood: 5/10"
	dur := 3
	m := ChatSessionPatch{SessionSummary: &summary, Duration: &dur}.SetMap()
	assert.Equal(t, summary, m["session_summary"])
	assert.Equal(t, 3, m["duration"])
	assert.NotContains(t, m, "messages")
}

func TestInsertMapOmitsServerFields(t *testing.T) {
	m := MoodEntry{ID: "x", UserID: "u", Mood: 7, Anxiety: 3}.InsertMap()
	assert.NotContains(t, m, "id")
	assert.NotContains(t, m, "user_id")
	assert.NotContains(t, m, "created_at")
	assert.Equal(t, 7, m["mood"])
}

func TestNewRowCoversEveryCollection(t *testing.T) {
	for _, c := range Collections {
		row, err := NewRow(c)
		require.NoError(t, err, c)
		assert.NotNil(t, row.InsertMap(), c)
	}

	_, err := NewRow("passwords")
	assert.ErrorIs(t, err, common.ErrUnknownCollection)
}

func TestNewPatch(t *testing.T) {
	p, err := NewPatch(ChatSessions)
	require.NoError(t, err)
	assert.IsType(t, &ChatSessionPatch{}, p)

	p, err = NewPatch(ErpSessions)
	require.NoError(t, err)
	assert.IsType(t, &ErpSessionPatch{}, p)

	_, err = NewPatch(MoodEntries)
	assert.ErrorIs(t, err, common.ErrInvalidPatch)

	_, err = NewPatch("nope")
	assert.ErrorIs(t, err, common.ErrUnknownCollection)
}
