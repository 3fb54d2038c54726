// Package export writes a user's cached records to a JSON or CSV file.
// Nothing is fetched from the server: the document is built from whatever
// the entity store holds.
package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/hopekeeper/internal/entities"
	"github.com/dmitrijs2005/hopekeeper/internal/filex"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

var ErrNothingSelected = errors.New("nothing selected for export")

// Selection is one checkbox of the export dialog.
type Selection struct {
	ID    string
	Label string
	Key   string
}

var Selections = []Selection{
	{ID: "mood", Label: "Mood Entries", Key: "moodEntries"},
	{ID: "thoughts", Label: "Thought Records", Key: "thoughtRecords"},
	{ID: "erp", Label: "ERP Sessions", Key: "erpSessions"},
	{ID: "meditation", Label: "Meditation Sessions", Key: "meditationSessions"},
	{ID: "sleep", Label: "Sleep Sessions", Key: "sleepSessions"},
	{ID: "ai", Label: "AI Conversations", Key: "aiSessions"},
}

var DefaultSelection = []string{"mood", "thoughts", "erp"}

// Data is the part of the cache that can be exported.
type Data struct {
	MoodEntries        []entities.MoodEntry
	ThoughtRecords     []entities.ThoughtRecord
	ErpSessions        []entities.ErpSession
	MeditationSessions []entities.MeditationSession
	SleepSessions      []entities.SleepSession
	ChatSessions       []entities.ChatSession
}

type User struct {
	ID    string
	Email string
}

// Document is the JSON export. Data only carries the selected keys.
type Document struct {
	ExportDate string         `json:"exportDate"`
	UserID     string         `json:"userId"`
	UserEmail  string         `json:"userEmail"`
	Data       map[string]any `json:"data"`
}

const isoMillis = "2006-01-02T15:04:05.000Z"

// Build assembles the document for the selected ids. Chat message content
// never leaves the device: it is replaced by a placeholder.
func Build(user User, data Data, selected []string, now time.Time) (*Document, error) {
	if len(selected) == 0 {
		return nil, ErrNothingSelected
	}

	doc := &Document{
		ExportDate: now.UTC().Format(isoMillis),
		UserID:     user.ID,
		UserEmail:  user.Email,
		Data:       map[string]any{},
	}

	for _, id := range selected {
		switch id {
		case "mood":
			doc.Data["moodEntries"] = nonNil(data.MoodEntries)
		case "thoughts":
			doc.Data["thoughtRecords"] = nonNil(data.ThoughtRecords)
		case "erp":
			doc.Data["erpSessions"] = nonNil(data.ErpSessions)
		case "meditation":
			doc.Data["meditationSessions"] = nonNil(data.MeditationSessions)
		case "sleep":
			doc.Data["sleepSessions"] = nonNil(data.SleepSessions)
		case "ai":
			doc.Data["aiSessions"] = redact(data.ChatSessions)
		default:
			return nil, fmt.Errorf("unknown export selection %q", id)
		}
	}
	return doc, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func redact(sessions []entities.ChatSession) []entities.ChatSession {
	out := make([]entities.ChatSession, 0, len(sessions))
	for _, s := range sessions {
		msgs := make(entities.Messages, 0, len(s.Messages))
		for _, m := range s.Messages {
			if m.Type == entities.MessageTypeUser {
				m.Content = "[User message]"
			} else {
				m.Content = "[AI response]"
			}
			msgs = append(msgs, m)
		}
		s.Messages = msgs
		out = append(out, s)
	}
	return out
}

// FileName is hope-for-ocd-data-YYYY-MM-DD.<format>, dated in UTC.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("hope-for-ocd-data-%s.%s", now.UTC().Format(time.DateOnly), f)
}

// Save writes doc into dir and returns the file path.
func Save(dir string, f Format, doc *Document, now time.Time) (string, error) {
	switch f {
	case FormatJSON:
		return filex.WriteFile(dir, FileName(f, now), func(w io.Writer) error { return WriteJSON(w, doc) })
	case FormatCSV:
		return filex.WriteFile(dir, FileName(f, now), func(w io.Writer) error { return WriteCSV(w, doc) })
	}
	return "", fmt.Errorf("unknown export format %q", f)
}
