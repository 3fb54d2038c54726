package entities

// ChatSessionPatch carries the mutable fields of a ChatSession. Nil fields
// are left untouched.
type ChatSessionPatch struct {
	Messages       *Messages `json:"messages,omitempty"`
	SessionSummary *string   `json:"session_summary,omitempty"`
	Duration       *int      `json:"duration,omitempty"`
	MoodAfter      *int      `json:"mood_after,omitempty"`
}

func (p ChatSessionPatch) SetMap() map[string]any {
	m := map[string]any{}
	if p.Messages != nil {
		m["messages"] = *p.Messages
	}
	if p.SessionSummary != nil {
		m["session_summary"] = *p.SessionSummary
	}
	if p.Duration != nil {
		m["duration"] = *p.Duration
	}
	if p.MoodAfter != nil {
		m["mood_after"] = *p.MoodAfter
	}
	return m
}

// ErpSessionPatch is used to complete a session.
type ErpSessionPatch struct {
	Completed    *bool   `json:"completed,omitempty"`
	AnxietyAfter *int    `json:"anxiety_after,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (p ErpSessionPatch) SetMap() map[string]any {
	m := map[string]any{}
	if p.Completed != nil {
		m["completed"] = *p.Completed
	}
	if p.AnxietyAfter != nil {
		m["anxiety_after"] = *p.AnxietyAfter
	}
	if p.Notes != nil {
		m["notes"] = *p.Notes
	}
	return m
}

// Updatable reports whether rows of collection accept Update calls.
func Updatable(collection string) bool {
	return collection == ChatSessions || collection == ErpSessions
}
