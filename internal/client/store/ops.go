package store

import (
	"context"

	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

func (s *Store) AddMoodEntry(ctx context.Context, e entities.MoodEntry) *entities.MoodEntry {
	return insert(ctx, s, entities.MoodEntries, e, func(d *Data) *[]entities.MoodEntry { return &d.MoodEntries })
}

func (s *Store) AddThoughtRecord(ctx context.Context, r entities.ThoughtRecord) *entities.ThoughtRecord {
	return insert(ctx, s, entities.ThoughtRecords, r, func(d *Data) *[]entities.ThoughtRecord { return &d.ThoughtRecords })
}

func (s *Store) AddErpSession(ctx context.Context, e entities.ErpSession) *entities.ErpSession {
	return insert(ctx, s, entities.ErpSessions, e, erpSessions)
}

func (s *Store) AddMeditationSession(ctx context.Context, m entities.MeditationSession) *entities.MeditationSession {
	return insert(ctx, s, entities.MeditationSessions, m, func(d *Data) *[]entities.MeditationSession { return &d.MeditationSessions })
}

func (s *Store) AddCrisisLog(ctx context.Context, c entities.CrisisLog) *entities.CrisisLog {
	return insert(ctx, s, entities.CrisisLogs, c, func(d *Data) *[]entities.CrisisLog { return &d.CrisisLogs })
}

func (s *Store) AddSleepSession(ctx context.Context, e entities.SleepSession) *entities.SleepSession {
	return insert(ctx, s, entities.SleepSessions, e, func(d *Data) *[]entities.SleepSession { return &d.SleepSessions })
}

func (s *Store) AddAchievement(ctx context.Context, a entities.Achievement) *entities.Achievement {
	return insert(ctx, s, entities.Achievements, a, func(d *Data) *[]entities.Achievement { return &d.Achievements })
}

func (s *Store) AddEducationProgress(ctx context.Context, p entities.EducationProgress) *entities.EducationProgress {
	return insert(ctx, s, entities.EducationProgresses, p, func(d *Data) *[]entities.EducationProgress { return &d.EducationProgress })
}

func (s *Store) AddChatSession(ctx context.Context, c entities.ChatSession) *entities.ChatSession {
	return insert(ctx, s, entities.ChatSessions, c, chatSessions)
}

// SavePreferences upserts the single preferences row.
func (s *Store) SavePreferences(ctx context.Context, p entities.UserPreferences) *entities.UserPreferences {
	if !s.signedIn(ctx, entities.UserPrefs) {
		return nil
	}
	raw, err := s.backend.Insert(ctx, entities.UserPrefs, p)
	if err != nil {
		s.logger.Error(ctx, "insert failed", "collection", entities.UserPrefs, "error", err)
		return nil
	}
	stored, ok := decode[entities.UserPreferences](ctx, s, entities.UserPrefs, raw)
	if !ok {
		return nil
	}

	s.mu.Lock()
	cached := *stored
	s.data.Preferences = &cached
	s.mu.Unlock()
	return stored
}

func (s *Store) UpdateChatSession(ctx context.Context, id string, p entities.ChatSessionPatch) *entities.ChatSession {
	return update(ctx, s, entities.ChatSessions, id, p, chatSessions, func(c entities.ChatSession) string { return c.ID })
}

// CompleteErpSession marks the session completed. A session that is
// already completed in the cache is returned as is, so completing twice
// never writes twice.
func (s *Store) CompleteErpSession(ctx context.Context, id string, anxietyAfter *int) *entities.ErpSession {
	s.mu.RLock()
	for _, e := range s.data.ErpSessions {
		if e.ID == id && e.Completed {
			s.mu.RUnlock()
			return &e
		}
	}
	s.mu.RUnlock()

	done := true
	patch := entities.ErpSessionPatch{Completed: &done, AnxietyAfter: anxietyAfter}
	return update(ctx, s, entities.ErpSessions, id, patch, erpSessions, func(e entities.ErpSession) string { return e.ID })
}

func (s *Store) DeleteMoodEntry(ctx context.Context, id string) bool {
	return remove(ctx, s, entities.MoodEntries, id,
		func(d *Data) *[]entities.MoodEntry { return &d.MoodEntries },
		func(e entities.MoodEntry) string { return e.ID })
}

func (s *Store) DeleteThoughtRecord(ctx context.Context, id string) bool {
	return remove(ctx, s, entities.ThoughtRecords, id,
		func(d *Data) *[]entities.ThoughtRecord { return &d.ThoughtRecords },
		func(r entities.ThoughtRecord) string { return r.ID })
}

func (s *Store) DeleteErpSession(ctx context.Context, id string) bool {
	return remove(ctx, s, entities.ErpSessions, id, erpSessions, func(e entities.ErpSession) string { return e.ID })
}

func erpSessions(d *Data) *[]entities.ErpSession   { return &d.ErpSessions }
func chatSessions(d *Data) *[]entities.ChatSession { return &d.ChatSessions }
