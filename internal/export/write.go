package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteCSV writes the mood, thought and ERP sections of doc. Other
// collections have no CSV layout and are skipped, as are empty sections.
// Sections are separated by a blank line.
func WriteCSV(w io.Writer, doc *Document) error {
	if moods, _ := doc.Data["moodEntries"].([]entities.MoodEntry); len(moods) > 0 {
		rows := make([][]string, 0, len(moods))
		for _, e := range moods {
			rows = append(rows, []string{
				e.CreatedAt.UTC().Format(isoMillis),
				strconv.Itoa(e.Mood),
				strconv.Itoa(e.Anxiety),
				e.Notes,
				strings.Join(e.Triggers, "; "),
			})
		}
		if err := section(w, "Mood Entries", []string{"Date", "Mood", "Anxiety", "Notes", "Triggers"}, rows); err != nil {
			return err
		}
	}

	if records, _ := doc.Data["thoughtRecords"].([]entities.ThoughtRecord); len(records) > 0 {
		rows := make([][]string, 0, len(records))
		for _, r := range records {
			rows = append(rows, []string{
				r.CreatedAt.UTC().Format(isoMillis),
				r.Situation,
				r.AutomaticThought,
				r.Emotion,
				r.EvidenceFor,
				r.EvidenceAgainst,
				r.BalancedThought,
				r.NewEmotion,
			})
		}
		header := []string{"Date", "Situation", "Automatic Thought", "Emotion", "Evidence For", "Evidence Against", "Balanced Thought", "New Emotion"}
		if err := section(w, "Thought Records", header, rows); err != nil {
			return err
		}
	}

	if sessions, _ := doc.Data["erpSessions"].([]entities.ErpSession); len(sessions) > 0 {
		rows := make([][]string, 0, len(sessions))
		for _, s := range sessions {
			rows = append(rows, []string{
				s.CreatedAt.UTC().Format(isoMillis),
				s.Exposure,
				strconv.Itoa(s.AnxietyBefore),
				strconv.Itoa(s.AnxietyAfter),
				strconv.Itoa(s.Duration),
				strconv.FormatBool(s.Completed),
				s.Notes,
			})
		}
		header := []string{"Date", "Exposure", "Anxiety Before", "Anxiety After", "Duration", "Completed", "Notes"}
		if err := section(w, "ERP Sessions", header, rows); err != nil {
			return err
		}
	}

	return nil
}

func section(w io.Writer, title string, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{title}); err != nil {
		return err
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
