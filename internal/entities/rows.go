package entities

import (
	"fmt"

	"github.com/dmitrijs2005/hopekeeper/internal/common"
)

// Row is implemented by a pointer to every record type.
type Row interface {
	InsertMap() map[string]any
}

// Patch is implemented by the partial-update payloads.
type Patch interface {
	SetMap() map[string]any
}

var rowTypes = map[string]func() Row{
	MoodEntries:         func() Row { return &MoodEntry{} },
	ThoughtRecords:      func() Row { return &ThoughtRecord{} },
	ErpSessions:         func() Row { return &ErpSession{} },
	UserPrefs:           func() Row { return &UserPreferences{} },
	ErpPlans:            func() Row { return &ErpPlan{} },
	MeditationSessions:  func() Row { return &MeditationSession{} },
	CrisisLogs:          func() Row { return &CrisisLog{} },
	Achievements:        func() Row { return &Achievement{} },
	SleepSessions:       func() Row { return &SleepSession{} },
	EducationProgresses: func() Row { return &EducationProgress{} },
	ChatSessions:        func() Row { return &ChatSession{} },
}

// NewRow allocates a zero row for collection.
func NewRow(collection string) (Row, error) {
	f, ok := rowTypes[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownCollection, collection)
	}
	return f(), nil
}

// NewPatch allocates an empty patch for collection. Collections that do not
// accept updates yield common.ErrInvalidPatch.
func NewPatch(collection string) (Patch, error) {
	switch collection {
	case ChatSessions:
		return &ChatSessionPatch{}, nil
	case ErpSessions:
		return &ErpSessionPatch{}, nil
	}
	if !Known(collection) {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownCollection, collection)
	}
	return nil, fmt.Errorf("%w: %s rows are immutable", common.ErrInvalidPatch, collection)
}
