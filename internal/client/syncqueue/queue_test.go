package syncqueue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/hopekeeper/internal/client/migrations"
	"github.com/dmitrijs2005/hopekeeper/internal/client/repositories/queue"
	"github.com/dmitrijs2005/hopekeeper/internal/entities"
	"github.com/dmitrijs2005/hopekeeper/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

// memRepo counts every call so tests can check that nothing was written.
type memRepo struct {
	mu     sync.Mutex
	items  []queue.Item
	writes int
	reads  int
	ackErr error
}

func (r *memRepo) Enqueue(_ context.Context, item queue.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.items = append(r.items, item)
	return nil
}

func (r *memRepo) Pending(_ context.Context, userID string) ([]queue.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	var out []queue.Item
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memRepo) Ack(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ackErr != nil {
		return r.ackErr
	}
	r.writes++
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memRepo) Count(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, it := range r.items {
		if it.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	kept := r.items[:0]
	for _, it := range r.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}

type replayerFunc func(ctx context.Context, item queue.Item) error

func (f replayerFunc) Replay(ctx context.Context, item queue.Item) error { return f(ctx, item) }

type recorder struct {
	mu     sync.Mutex
	seen   []string
	failAt string
}

func (r *recorder) Replay(_ context.Context, item queue.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, item.ID)
	if item.ID == r.failAt {
		return errors.New("offline again")
	}
	return nil
}

func newQueue(repo queue.Repository, rp Replayer) *Queue {
	q := New(repo, rp, logging.Nop{})
	n := 0
	q.newID = func() string { n++; return fmt.Sprintf("q%d", n) }
	q.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return q
}

func TestEnqueue(t *testing.T) {
	repo := &memRepo{}
	q := newQueue(repo, &recorder{})
	ctx := context.Background()

	item, err := q.Enqueue(ctx, "u1", TypeMoodEntry, entities.MoodEntry{Mood: 4})
	require.NoError(t, err)
	assert.Equal(t, "q1", item.ID)
	assert.Equal(t, int64(1700000000000), item.EnqueuedAt)
	assert.Equal(t, "u1", item.UserID)
	assert.Contains(t, string(item.Payload), `"mood":4`)
	assert.Equal(t, 1, q.Len(ctx, "u1"))

	_, err = q.Enqueue(ctx, "u1", "diary", struct{}{})
	assert.ErrorIs(t, err, ErrUnknownType)
	_, err = q.Enqueue(ctx, "", TypeMoodEntry, entities.MoodEntry{Mood: 4})
	assert.ErrorIs(t, err, ErrNoOwner)
	assert.Equal(t, 1, repo.writes)
}

func TestSync_EmptyQueueTouchesNothing(t *testing.T) {
	repo := &memRepo{}
	called := false
	q := newQueue(repo, replayerFunc(func(context.Context, queue.Item) error {
		called = true
		return nil
	}))

	res, err := q.Sync(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.False(t, called)
	assert.Zero(t, repo.writes)
}

func TestSync_ReplaysInOrderAndAcksEach(t *testing.T) {
	repo := &memRepo{}
	rec := &recorder{}
	q := newQueue(repo, rec)
	ctx := context.Background()

	for _, typ := range []string{TypeMoodEntry, TypeCrisisLog, TypeSleepSession} {
		_, err := q.Enqueue(ctx, "u1", typ, map[string]any{})
		require.NoError(t, err)
	}

	res, err := q.Sync(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Result{Replayed: 3}, res)
	assert.Equal(t, []string{"q1", "q2", "q3"}, rec.seen)
	assert.Zero(t, q.Len(ctx, "u1"))
}

func TestSync_FirstFailureStopsAndKeepsTail(t *testing.T) {
	repo := &memRepo{}
	rec := &recorder{failAt: "q2"}
	q := newQueue(repo, rec)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := q.Enqueue(ctx, "u1", TypeMoodEntry, map[string]int{"mood": i})
		require.NoError(t, err)
	}

	res, err := q.Sync(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Result{Replayed: 1, Remaining: 3}, res)
	assert.Equal(t, []string{"q1", "q2"}, rec.seen)

	pending, err := q.Pending(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, "q2", pending[0].ID)

	// next pass resumes from the failed item
	rec.failAt = ""
	res, err = q.Sync(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Replayed)
	assert.Equal(t, []string{"q1", "q2", "q2", "q3", "q4"}, rec.seen)
}

func TestSync_AckErrorStopsPass(t *testing.T) {
	repo := &memRepo{}
	q := newQueue(repo, &recorder{})
	ctx := context.Background()
	_, err := q.Enqueue(ctx, "u1", TypeMoodEntry, map[string]int{})
	require.NoError(t, err)

	repo.ackErr = errors.New("disk full")
	res, err := q.Sync(ctx, "u1")
	assert.Error(t, err)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, 1, q.Len(ctx, "u1"))
}

func TestSync_OnePassAtATime(t *testing.T) {
	repo := &memRepo{}
	started := make(chan struct{})
	release := make(chan struct{})
	q := newQueue(repo, replayerFunc(func(context.Context, queue.Item) error {
		close(started)
		<-release
		return nil
	}))
	ctx := context.Background()
	_, err := q.Enqueue(ctx, "u1", TypeMoodEntry, map[string]int{})
	require.NoError(t, err)

	done := make(chan Result)
	go func() {
		res, _ := q.Sync(ctx, "u1")
		done <- res
	}()
	<-started

	res, err := q.Sync(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	close(release)
	assert.Equal(t, Result{Replayed: 1}, <-done)
}

func TestClear(t *testing.T) {
	repo := &memRepo{}
	q := newQueue(repo, &recorder{})
	ctx := context.Background()
	_, err := q.Enqueue(ctx, "u1", TypeMoodEntry, map[string]int{})
	require.NoError(t, err)

	require.NoError(t, q.Clear(ctx, "u1"))
	assert.Zero(t, q.Len(ctx, "u1"))
}

func TestSync_OnlyReplaysOwnersItems(t *testing.T) {
	repo := &memRepo{}
	rec := &recorder{}
	q := newQueue(repo, rec)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, "alice", TypeMoodEntry, entities.MoodEntry{Mood: 2, Notes: "private"})
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, "bob", TypeSleepSession, entities.SleepSession{SessionType: "rain"})
	require.NoError(t, err)

	res, err := q.Sync(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, Result{Replayed: 1}, res)
	assert.Equal(t, []string{"q2"}, rec.seen)
	assert.Zero(t, q.Len(ctx, "bob"))
	assert.Equal(t, 1, q.Len(ctx, "alice"))

	res, err = q.Sync(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.Zero(t, q.Len(ctx, ""))

	require.NoError(t, q.Clear(ctx, "bob"))
	assert.Equal(t, 1, q.Len(ctx, "alice"), "clearing bob keeps alice's items")

	res, err = q.Sync(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, Result{Replayed: 1}, res)
	assert.Equal(t, []string{"q2", "q1"}, rec.seen)
}

func TestSync_SQLiteBacked(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "q.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migrations.Up(context.Background(), db))

	store := &fakeStore{failMood: true}
	q := newQueue(queue.NewSQLiteRepository(db), StoreReplayer{Store: store})
	ctx := context.Background()

	_, err = q.Enqueue(ctx, "u1", TypeCrisisLog, entities.CrisisLog{ToolUsed: "grounding"})
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, "u1", TypeMoodEntry, entities.MoodEntry{Mood: 2})
	require.NoError(t, err)

	res, err := q.Sync(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Result{Replayed: 1, Remaining: 1}, res)

	store.failMood = false
	res, err = q.Sync(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Result{Replayed: 1}, res)
	assert.Zero(t, q.Len(ctx, "u1"))

	raw, _ := json.Marshal(store.crisis)
	assert.Contains(t, string(raw), "grounding")
}
