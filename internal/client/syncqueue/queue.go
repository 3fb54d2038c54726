// Package syncqueue holds writes made while the server is unreachable and
// replays them once it is back. Every item belongs to the user who made it
// and is only replayed for that user. Items are replayed oldest first and
// each one is removed only after its own replay succeeded; the first
// failure ends the pass and keeps the rest for the next one.
package syncqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/hopekeeper/internal/client/repositories/queue"
	"github.com/dmitrijs2005/hopekeeper/internal/logging"
)

// Item type tags.
const (
	TypeMoodEntry         = "mood_entry"
	TypeThoughtRecord     = "thought_record"
	TypeErpSession        = "erp_session"
	TypeMeditationSession = "meditation_session"
	TypeCrisisLog         = "crisis_log"
	TypeSleepSession      = "sleep_session"
)

var Types = []string{
	TypeMoodEntry,
	TypeThoughtRecord,
	TypeErpSession,
	TypeMeditationSession,
	TypeCrisisLog,
	TypeSleepSession,
}

var (
	ErrUnknownType = errors.New("unknown queue item type")
	ErrNoOwner     = errors.New("queue item has no owner")
)

func knownType(t string) bool {
	for _, k := range Types {
		if k == t {
			return true
		}
	}
	return false
}

// Replayer sends one queued write to the server.
type Replayer interface {
	Replay(ctx context.Context, item queue.Item) error
}

// Result describes one sync pass.
type Result struct {
	Replayed  int
	Remaining int
	// Skipped is set when another pass was already running.
	Skipped bool
}

type Queue struct {
	repo     queue.Repository
	replayer Replayer
	logger   logging.Logger
	now      func() time.Time
	newID    func() string

	mu       sync.Mutex
	inFlight bool
}

func New(repo queue.Repository, replayer Replayer, logger logging.Logger) *Queue {
	return &Queue{
		repo:     repo,
		replayer: replayer,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Enqueue stores payload under the type tag typ on behalf of userID.
func (q *Queue) Enqueue(ctx context.Context, userID, typ string, payload any) (queue.Item, error) {
	if userID == "" {
		return queue.Item{}, ErrNoOwner
	}
	if !knownType(typ) {
		return queue.Item{}, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return queue.Item{}, fmt.Errorf("encode %s: %w", typ, err)
	}

	item := queue.Item{
		ID:         q.newID(),
		UserID:     userID,
		Type:       typ,
		Payload:    data,
		EnqueuedAt: q.now().UnixMilli(),
	}
	if err := q.repo.Enqueue(ctx, item); err != nil {
		return queue.Item{}, err
	}
	q.logger.Info(ctx, "queued offline write", "type", typ, "id", item.ID)
	return item, nil
}

func (q *Queue) Pending(ctx context.Context, userID string) ([]queue.Item, error) {
	if userID == "" {
		return nil, nil
	}
	return q.repo.Pending(ctx, userID)
}

// Len is the number of userID's pending items; storage errors count as
// zero.
func (q *Queue) Len(ctx context.Context, userID string) int {
	if userID == "" {
		return 0
	}
	n, err := q.repo.Count(ctx, userID)
	if err != nil {
		q.logger.Error(ctx, "count queue", "error", err)
		return 0
	}
	return n
}

// Clear drops userID's pending items. Other users' items are kept.
func (q *Queue) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return q.repo.Clear(ctx, userID)
}

// Sync runs one replay pass over userID's items. Items queued by other
// users stay where they are until their owner syncs. A pass over an empty
// queue makes no replay calls and writes nothing. Concurrent calls do not
// overlap: the later one returns at once with Skipped set.
func (q *Queue) Sync(ctx context.Context, userID string) (Result, error) {
	if userID == "" {
		return Result{}, nil
	}

	q.mu.Lock()
	if q.inFlight {
		q.mu.Unlock()
		return Result{Skipped: true}, nil
	}
	q.inFlight = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.inFlight = false
		q.mu.Unlock()
	}()

	items, err := q.repo.Pending(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if len(items) == 0 {
		return Result{}, nil
	}

	var res Result
	for i, item := range items {
		if err := q.replayer.Replay(ctx, item); err != nil {
			res.Remaining = len(items) - i
			q.logger.Warn(ctx, "replay failed, keeping queue", "type", item.Type, "id", item.ID, "remaining", res.Remaining, "error", err)
			return res, nil
		}
		if err := q.repo.Ack(ctx, item.ID); err != nil {
			res.Remaining = len(items) - i
			return res, err
		}
		res.Replayed++
	}

	q.logger.Info(ctx, "offline queue synced", "user", userID, "replayed", res.Replayed)
	return res, nil
}
