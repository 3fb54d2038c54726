// Package store is the client's in-memory cache of the signed-in user's
// records. Every write goes to the backend first and is applied to the
// cache only after the backend returned the stored row. Failures are
// logged with the collection name and reported as nil or false; callers
// never see backend errors.
package store

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/hopekeeper/internal/entities"
	"github.com/dmitrijs2005/hopekeeper/internal/logging"
)

// Backend is the hosted row store. client.GRPCClient implements it.
type Backend interface {
	List(ctx context.Context, collection string) ([]json.RawMessage, error)
	Insert(ctx context.Context, collection string, row any) (json.RawMessage, error)
	Update(ctx context.Context, collection, id string, patch any) (json.RawMessage, error)
	Delete(ctx context.Context, collection, id string) (bool, error)
}

// Data is one snapshot of every collection, newest first.
type Data struct {
	MoodEntries        []entities.MoodEntry
	ThoughtRecords     []entities.ThoughtRecord
	ErpSessions        []entities.ErpSession
	Preferences        *entities.UserPreferences
	ErpPlans           []entities.ErpPlan
	MeditationSessions []entities.MeditationSession
	CrisisLogs         []entities.CrisisLog
	Achievements       []entities.Achievement
	SleepSessions      []entities.SleepSession
	EducationProgress  []entities.EducationProgress
	ChatSessions       []entities.ChatSession
}

func (d Data) clone() Data {
	out := Data{
		MoodEntries:        slices.Clone(d.MoodEntries),
		ThoughtRecords:     slices.Clone(d.ThoughtRecords),
		ErpSessions:        slices.Clone(d.ErpSessions),
		ErpPlans:           slices.Clone(d.ErpPlans),
		MeditationSessions: slices.Clone(d.MeditationSessions),
		CrisisLogs:         slices.Clone(d.CrisisLogs),
		Achievements:       slices.Clone(d.Achievements),
		SleepSessions:      slices.Clone(d.SleepSessions),
		EducationProgress:  slices.Clone(d.EducationProgress),
		ChatSessions:       slices.Clone(d.ChatSessions),
	}
	if d.Preferences != nil {
		p := *d.Preferences
		out.Preferences = &p
	}
	return out
}

type Store struct {
	backend Backend
	logger  logging.Logger

	mu     sync.RWMutex
	userID string
	data   Data
}

func New(backend Backend, logger logging.Logger) *Store {
	return &Store{backend: backend, logger: logger}
}

// SetIdentity switches the signed-in user. Any change empties the cache;
// an empty userID means nobody is signed in.
func (s *Store) SetIdentity(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID != s.userID {
		s.data = Data{}
	}
	s.userID = userID
}

func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Snapshot returns a copy of every collection.
func (s *Store) Snapshot() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

// LoadAll fetches every collection in one parallel batch. Either all of
// them are replaced or, when any fetch fails, none are. Without an identity
// the cache is emptied.
func (s *Store) LoadAll(ctx context.Context) bool {
	userID := s.UserID()
	if userID == "" {
		s.mu.Lock()
		s.data = Data{}
		s.mu.Unlock()
		return false
	}

	var (
		next  Data
		prefs []entities.UserPreferences
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(fetch(gctx, s.backend, entities.MoodEntries, &next.MoodEntries))
	g.Go(fetch(gctx, s.backend, entities.ThoughtRecords, &next.ThoughtRecords))
	g.Go(fetch(gctx, s.backend, entities.ErpSessions, &next.ErpSessions))
	g.Go(fetch(gctx, s.backend, entities.UserPrefs, &prefs))
	g.Go(fetch(gctx, s.backend, entities.ErpPlans, &next.ErpPlans))
	g.Go(fetch(gctx, s.backend, entities.MeditationSessions, &next.MeditationSessions))
	g.Go(fetch(gctx, s.backend, entities.CrisisLogs, &next.CrisisLogs))
	g.Go(fetch(gctx, s.backend, entities.Achievements, &next.Achievements))
	g.Go(fetch(gctx, s.backend, entities.SleepSessions, &next.SleepSessions))
	g.Go(fetch(gctx, s.backend, entities.EducationProgresses, &next.EducationProgress))
	g.Go(fetch(gctx, s.backend, entities.ChatSessions, &next.ChatSessions))

	if err := g.Wait(); err != nil {
		s.logger.Error(ctx, "load failed, keeping cached data", "error", err)
		return false
	}
	if len(prefs) > 0 {
		next.Preferences = &prefs[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		// signed out or switched user while loading
		return false
	}
	s.data = next
	return true
}

// Refresh reloads everything from the backend.
func (s *Store) Refresh(ctx context.Context) bool {
	return s.LoadAll(ctx)
}

func fetch[T any](ctx context.Context, b Backend, collection string, dst *[]T) func() error {
	return func() error {
		raws, err := b.List(ctx, collection)
		if err != nil {
			return &collectionError{collection: collection, err: err}
		}
		rows := make([]T, 0, len(raws))
		for _, raw := range raws {
			var row T
			if err := json.Unmarshal(raw, &row); err != nil {
				return &collectionError{collection: collection, err: err}
			}
			rows = append(rows, row)
		}
		*dst = rows
		return nil
	}
}

type collectionError struct {
	collection string
	err        error
}

func (e *collectionError) Error() string { return e.collection + ": " + e.err.Error() }
func (e *collectionError) Unwrap() error { return e.err }

func (s *Store) signedIn(ctx context.Context, collection string) bool {
	if s.UserID() == "" {
		s.logger.Warn(ctx, "no signed-in user", "collection", collection)
		return false
	}
	return true
}

func decode[T any](ctx context.Context, s *Store, collection string, raw json.RawMessage) (*T, bool) {
	var row T
	if err := json.Unmarshal(raw, &row); err != nil {
		s.logger.Error(ctx, "malformed row from backend", "collection", collection, "error", err)
		return nil, false
	}
	return &row, true
}

// insert stores row and prepends the returned record to the list pick
// selects.
func insert[T any](ctx context.Context, s *Store, collection string, row T, pick func(*Data) *[]T) *T {
	if !s.signedIn(ctx, collection) {
		return nil
	}
	raw, err := s.backend.Insert(ctx, collection, row)
	if err != nil {
		s.logger.Error(ctx, "insert failed", "collection", collection, "error", err)
		return nil
	}
	stored, ok := decode[T](ctx, s, collection, raw)
	if !ok {
		return nil
	}

	s.mu.Lock()
	list := pick(&s.data)
	*list = append([]T{*stored}, *list...)
	s.mu.Unlock()
	return stored
}

// update patches the row with id and swaps it in place.
func update[T any](ctx context.Context, s *Store, collection, id string, patch any, pick func(*Data) *[]T, idOf func(T) string) *T {
	if !s.signedIn(ctx, collection) {
		return nil
	}
	raw, err := s.backend.Update(ctx, collection, id, patch)
	if err != nil {
		s.logger.Error(ctx, "update failed", "collection", collection, "id", id, "error", err)
		return nil
	}
	stored, ok := decode[T](ctx, s, collection, raw)
	if !ok {
		return nil
	}

	s.mu.Lock()
	list := pick(&s.data)
	for i := range *list {
		if idOf((*list)[i]) == id {
			(*list)[i] = *stored
			break
		}
	}
	s.mu.Unlock()
	return stored
}

// remove deletes the row with id and filters it out of the cache.
func remove[T any](ctx context.Context, s *Store, collection, id string, pick func(*Data) *[]T, idOf func(T) string) bool {
	if !s.signedIn(ctx, collection) {
		return false
	}
	deleted, err := s.backend.Delete(ctx, collection, id)
	if err != nil {
		s.logger.Error(ctx, "delete failed", "collection", collection, "id", id, "error", err)
		return false
	}
	if !deleted {
		s.logger.Warn(ctx, "nothing deleted", "collection", collection, "id", id)
		return false
	}

	s.mu.Lock()
	list := pick(&s.data)
	*list = slices.DeleteFunc(*list, func(row T) bool { return idOf(row) == id })
	s.mu.Unlock()
	return true
}
