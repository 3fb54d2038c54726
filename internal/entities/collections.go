package entities

// Collection names double as backend table names.
const (
	MoodEntries         = "mood_entries"
	ThoughtRecords      = "thought_records"
	ErpSessions         = "erp_sessions"
	UserPrefs           = "user_preferences"
	ErpPlans            = "erp_plans"
	MeditationSessions  = "meditation_sessions"
	CrisisLogs          = "crisis_logs"
	Achievements        = "achievements"
	SleepSessions       = "sleep_sessions"
	EducationProgresses = "education_progress"
	ChatSessions        = "ai_sessions"
)

// Collections lists every collection in load order.
var Collections = []string{
	MoodEntries,
	ThoughtRecords,
	ErpSessions,
	UserPrefs,
	ErpPlans,
	MeditationSessions,
	CrisisLogs,
	Achievements,
	SleepSessions,
	EducationProgresses,
	ChatSessions,
}

// OrderColumn returns the column a collection is sorted by, newest first.
func OrderColumn(collection string) string {
	switch collection {
	case Achievements:
		return "earned_at"
	case EducationProgresses:
		return "updated_at"
	default:
		return "created_at"
	}
}

// Known reports whether collection is one of Collections.
func Known(collection string) bool {
	for _, c := range Collections {
		if c == collection {
			return true
		}
	}
	return false
}
