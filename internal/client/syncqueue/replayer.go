package syncqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hopekeeper/internal/client/repositories/queue"
	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

var ErrReplayFailed = errors.New("replay failed")

// EntityStore is the part of the entity store the replayer writes through.
// Every method returns nil when the write did not happen.
type EntityStore interface {
	AddMoodEntry(ctx context.Context, e entities.MoodEntry) *entities.MoodEntry
	AddThoughtRecord(ctx context.Context, r entities.ThoughtRecord) *entities.ThoughtRecord
	AddErpSession(ctx context.Context, e entities.ErpSession) *entities.ErpSession
	AddMeditationSession(ctx context.Context, m entities.MeditationSession) *entities.MeditationSession
	AddCrisisLog(ctx context.Context, c entities.CrisisLog) *entities.CrisisLog
	AddSleepSession(ctx context.Context, s entities.SleepSession) *entities.SleepSession
}

// StoreReplayer replays items through the entity store's Add operations.
type StoreReplayer struct {
	Store EntityStore
}

func (r StoreReplayer) Replay(ctx context.Context, item queue.Item) error {
	switch item.Type {
	case TypeMoodEntry:
		return replay(ctx, item, r.Store.AddMoodEntry)
	case TypeThoughtRecord:
		return replay(ctx, item, r.Store.AddThoughtRecord)
	case TypeErpSession:
		return replay(ctx, item, r.Store.AddErpSession)
	case TypeMeditationSession:
		return replay(ctx, item, r.Store.AddMeditationSession)
	case TypeCrisisLog:
		return replay(ctx, item, r.Store.AddCrisisLog)
	case TypeSleepSession:
		return replay(ctx, item, r.Store.AddSleepSession)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, item.Type)
	}
}

func replay[T any](ctx context.Context, item queue.Item, add func(context.Context, T) *T) error {
	var row T
	if err := json.Unmarshal(item.Payload, &row); err != nil {
		return fmt.Errorf("decode %s %s: %w", item.Type, item.ID, err)
	}
	if add(ctx, row) == nil {
		return fmt.Errorf("%w: %s %s", ErrReplayFailed, item.Type, item.ID)
	}
	return nil
}
