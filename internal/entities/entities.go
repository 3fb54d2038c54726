// Package entities holds the per-user records stored by the backend. Every
// record belongs to exactly one user and carries a server-assigned id and
// creation timestamp. JSON keys follow the backend column names.
package entities

import "time"

type MoodEntry struct {
	ID        string     `json:"id" db:"id"`
	UserID    string     `json:"user_id" db:"user_id"`
	Mood      int        `json:"mood" db:"mood"`
	Anxiety   int        `json:"anxiety" db:"anxiety"`
	Notes     string     `json:"notes" db:"notes"`
	Triggers  StringList `json:"triggers" db:"triggers"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

func (e MoodEntry) InsertMap() map[string]any {
	return map[string]any{
		"mood":     e.Mood,
		"anxiety":  e.Anxiety,
		"notes":    e.Notes,
		"triggers": e.Triggers,
	}
}

type ThoughtRecord struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	Situation        string    `json:"situation" db:"situation"`
	AutomaticThought string    `json:"automatic_thought" db:"automatic_thought"`
	Emotion          string    `json:"emotion" db:"emotion"`
	EvidenceFor      string    `json:"evidence_for" db:"evidence_for"`
	EvidenceAgainst  string    `json:"evidence_against" db:"evidence_against"`
	BalancedThought  string    `json:"balanced_thought" db:"balanced_thought"`
	NewEmotion       string    `json:"new_emotion" db:"new_emotion"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

func (e ThoughtRecord) InsertMap() map[string]any {
	return map[string]any{
		"situation":         e.Situation,
		"automatic_thought": e.AutomaticThought,
		"emotion":           e.Emotion,
		"evidence_for":      e.EvidenceFor,
		"evidence_against":  e.EvidenceAgainst,
		"balanced_thought":  e.BalancedThought,
		"new_emotion":       e.NewEmotion,
	}
}

// ErpSession is one exposure and response prevention exercise.
type ErpSession struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Exposure      string    `json:"exposure" db:"exposure"`
	AnxietyBefore int       `json:"anxiety_before" db:"anxiety_before"`
	AnxietyAfter  int       `json:"anxiety_after" db:"anxiety_after"`
	Duration      int       `json:"duration" db:"duration"`
	Completed     bool      `json:"completed" db:"completed"`
	Notes         string    `json:"notes" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func (e ErpSession) InsertMap() map[string]any {
	return map[string]any{
		"exposure":       e.Exposure,
		"anxiety_before": e.AnxietyBefore,
		"anxiety_after":  e.AnxietyAfter,
		"duration":       e.Duration,
		"completed":      e.Completed,
		"notes":          e.Notes,
	}
}

// UserPreferences exists at most once per user.
type UserPreferences struct {
	ID                    string     `json:"id" db:"id"`
	UserID                string     `json:"user_id" db:"user_id"`
	OcdThemes             StringList `json:"ocd_themes" db:"ocd_themes"`
	DifficultyLevel       int        `json:"difficulty_level" db:"difficulty_level"`
	AnonymousMode         bool       `json:"anonymous_mode" db:"anonymous_mode"`
	ReminderFrequency     string     `json:"reminder_frequency" db:"reminder_frequency"`
	AccessibilitySettings Object     `json:"accessibility_settings" db:"accessibility_settings"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

func (e UserPreferences) InsertMap() map[string]any {
	return map[string]any{
		"ocd_themes":             e.OcdThemes,
		"difficulty_level":       e.DifficultyLevel,
		"anonymous_mode":         e.AnonymousMode,
		"reminder_frequency":     e.ReminderFrequency,
		"accessibility_settings": e.AccessibilitySettings,
	}
}

type ErpPlan struct {
	ID                 string     `json:"id" db:"id"`
	UserID             string     `json:"user_id" db:"user_id"`
	Theme              string     `json:"theme" db:"theme"`
	CurrentLevel       int        `json:"current_level" db:"current_level"`
	Exercises          ObjectList `json:"exercises" db:"exercises"`
	CompletedExercises StringList `json:"completed_exercises" db:"completed_exercises"`
	NextUnlockDate     *time.Time `json:"next_unlock_date,omitempty" db:"next_unlock_date"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

func (e ErpPlan) InsertMap() map[string]any {
	return map[string]any{
		"theme":               e.Theme,
		"current_level":       e.CurrentLevel,
		"exercises":           e.Exercises,
		"completed_exercises": e.CompletedExercises,
		"next_unlock_date":    e.NextUnlockDate,
	}
}

type MeditationSession struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	SessionType string    `json:"session_type" db:"session_type"`
	Duration    int       `json:"duration" db:"duration"`
	Completed   bool      `json:"completed" db:"completed"`
	Rating      *int      `json:"rating,omitempty" db:"rating"`
	Notes       string    `json:"notes" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (e MeditationSession) InsertMap() map[string]any {
	return map[string]any{
		"session_type": e.SessionType,
		"duration":     e.Duration,
		"completed":    e.Completed,
		"rating":       e.Rating,
		"notes":        e.Notes,
	}
}

// CrisisLog records use of a crisis toolkit tool.
type CrisisLog struct {
	ID                  string    `json:"id" db:"id"`
	UserID              string    `json:"user_id" db:"user_id"`
	ToolUsed            string    `json:"tool_used" db:"tool_used"`
	Duration            *int      `json:"duration,omitempty" db:"duration"`
	EffectivenessRating *int      `json:"effectiveness_rating,omitempty" db:"effectiveness_rating"`
	Notes               string    `json:"notes" db:"notes"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

func (e CrisisLog) InsertMap() map[string]any {
	return map[string]any{
		"tool_used":            e.ToolUsed,
		"duration":             e.Duration,
		"effectiveness_rating": e.EffectivenessRating,
		"notes":                e.Notes,
	}
}

type Achievement struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	AchievementType string    `json:"achievement_type" db:"achievement_type"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	StreakCount     int       `json:"streak_count" db:"streak_count"`
	EarnedAt        time.Time `json:"earned_at" db:"earned_at"`
}

func (e Achievement) InsertMap() map[string]any {
	return map[string]any{
		"achievement_type": e.AchievementType,
		"title":            e.Title,
		"description":      e.Description,
		"streak_count":     e.StreakCount,
	}
}

type SleepSession struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	SessionType  string    `json:"session_type" db:"session_type"`
	Duration     *int      `json:"duration,omitempty" db:"duration"`
	Completed    bool      `json:"completed" db:"completed"`
	SleepQuality *int      `json:"sleep_quality,omitempty" db:"sleep_quality"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (e SleepSession) InsertMap() map[string]any {
	return map[string]any{
		"session_type":  e.SessionType,
		"duration":      e.Duration,
		"completed":     e.Completed,
		"sleep_quality": e.SleepQuality,
	}
}

type EducationProgress struct {
	ID                 string    `json:"id" db:"id"`
	UserID             string    `json:"user_id" db:"user_id"`
	ContentID          string    `json:"content_id" db:"content_id"`
	ContentType        string    `json:"content_type" db:"content_type"`
	ProgressPercentage int       `json:"progress_percentage" db:"progress_percentage"`
	Completed          bool      `json:"completed" db:"completed"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

func (e EducationProgress) InsertMap() map[string]any {
	return map[string]any{
		"content_id":          e.ContentID,
		"content_type":        e.ContentType,
		"progress_percentage": e.ProgressPercentage,
		"completed":           e.Completed,
	}
}

// ChatSession is a stored conversation with the chat companion.
type ChatSession struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	SessionType    string    `json:"session_type" db:"session_type"`
	Messages       Messages  `json:"messages" db:"messages"`
	SessionSummary string    `json:"session_summary" db:"session_summary"`
	MoodBefore     *int      `json:"mood_before,omitempty" db:"mood_before"`
	MoodAfter      *int      `json:"mood_after,omitempty" db:"mood_after"`
	Duration       int       `json:"duration" db:"duration"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

func (e ChatSession) InsertMap() map[string]any {
	return map[string]any{
		"session_type":    e.SessionType,
		"messages":        e.Messages,
		"session_summary": e.SessionSummary,
		"mood_before":     e.MoodBefore,
		"mood_after":      e.MoodAfter,
		"duration":        e.Duration,
	}
}

const (
	SessionTypeChat   = "chat"
	SessionTypeGuided = "guided"
	SessionTypeCrisis = "crisis"
)

const (
	MessageTypeUser = "user"
	MessageTypeAI   = "ai"
)

// ChatMessage is one line of a chat session. Category, Severity and Emotion
// are optional tags.
type ChatMessage struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category,omitempty"`
	Severity  string    `json:"severity,omitempty"`
	Emotion   string    `json:"emotion,omitempty"`
}
