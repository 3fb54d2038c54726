package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hopekeeper/internal/client/syncqueue"
	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

var (
	errNotSaved    = errors.New("could not save, please try again")
	errNeedsServer = errors.New("this needs a connection to the server")
)

const timeLayout = "2006-01-02 15:04"

// persist writes v through the entity store when online. Otherwise v is
// queued under typ for the next sync and a nil row is returned.
func persist[T any](ctx context.Context, a *App, typ string, v T, add func(context.Context, T) *T) (*T, error) {
	if a.Mode() != ModeOnline {
		if _, err := a.queue.Enqueue(ctx, a.userID(), typ, v); err != nil {
			return nil, fmt.Errorf("save offline: %w", err)
		}
		a.println("Saved offline. It will be sent when the connection is back.")
		return nil, nil
	}
	row := add(ctx, v)
	if row == nil {
		return nil, errNotSaved
	}
	return row, nil
}

func (a *App) requireOnline() error {
	if a.Mode() != ModeOnline {
		return errNeedsServer
	}
	return nil
}

func limitFlag(cmd *cobra.Command, n *int) {
	cmd.Flags().IntVarP(n, "limit", "n", 10, "how many entries to show")
}

func head[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func (a *App) moodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "mood",
		Short:       "Log and review mood and anxiety",
		Annotations: loginRequired(),
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Show recent mood entries",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			entries := head(a.store.Snapshot().MoodEntries, limit)
			if len(entries) == 0 {
				a.println("No mood entries yet.")
				return
			}
			for _, e := range entries {
				a.printf("%s  %s  mood %d/10, anxiety %d/10", e.ID, e.CreatedAt.Local().Format(timeLayout), e.Mood, e.Anxiety)
				if len(e.Triggers) > 0 {
					a.printf("  [%s]", strings.Join(e.Triggers, ", "))
				}
				a.println()
				if e.Notes != "" {
					a.printf("    %s\n", e.Notes)
				}
			}
		},
	}
	limitFlag(list, &limit)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add",
			Short: "Log how you feel right now",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.addMood(cmd.Context())
			},
		},
		list,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a mood entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.requireOnline(); err != nil {
					return err
				}
				if !a.store.DeleteMoodEntry(cmd.Context(), args[0]) {
					return errors.New("could not delete the entry")
				}
				a.println("Deleted.")
				return nil
			},
		},
	)
	return cmd
}

func (a *App) addMood(ctx context.Context) error {
	mood, err := GetInt(a.reader, "Mood", 1, 10, a.out)
	if err != nil {
		return err
	}
	anxiety, err := GetInt(a.reader, "Anxiety", 1, 10, a.out)
	if err != nil {
		return err
	}
	triggers, err := GetChoices(a.reader, "Triggers (comma separated numbers or your own words, blank for none)", a.catalog.Tracking.Triggers, a.out)
	if err != nil {
		return err
	}
	notes, err := GetMultiline(a.reader, "Notes", a.out)
	if err != nil {
		return err
	}

	entry := entities.MoodEntry{Mood: mood, Anxiety: anxiety, Triggers: triggers, Notes: notes}
	row, err := persist(ctx, a, syncqueue.TypeMoodEntry, entry, a.store.AddMoodEntry)
	if err != nil {
		return err
	}
	if row != nil {
		a.println("Mood logged. Thank you for checking in.")
	}
	return nil
}

func (a *App) thoughtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "thought",
		Short:       "CBT thought records",
		Annotations: loginRequired(),
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Show recent thought records",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			records := head(a.store.Snapshot().ThoughtRecords, limit)
			if len(records) == 0 {
				a.println("No thought records yet.")
				return
			}
			for _, r := range records {
				a.printf("%s  %s  %s\n", r.ID, r.CreatedAt.Local().Format(timeLayout), r.Situation)
				a.printf("    thought:  %s (%s)\n", r.AutomaticThought, r.Emotion)
				if r.BalancedThought != "" {
					a.printf("    balanced: %s (%s)\n", r.BalancedThought, r.NewEmotion)
				}
			}
		},
	}
	limitFlag(list, &limit)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add",
			Short: "Work through a thought record",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.addThought(cmd.Context())
			},
		},
		list,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a thought record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.requireOnline(); err != nil {
					return err
				}
				if !a.store.DeleteThoughtRecord(cmd.Context(), args[0]) {
					return errors.New("could not delete the record")
				}
				a.println("Deleted.")
				return nil
			},
		},
	)
	return cmd
}

func (a *App) addThought(ctx context.Context) error {
	var r entities.ThoughtRecord
	questions := []struct {
		prompt string
		dst    *string
	}{
		{"What happened? (situation)", &r.Situation},
		{"What went through your mind? (automatic thought)", &r.AutomaticThought},
		{"What did you feel?", &r.Emotion},
		{"Evidence that supports the thought", &r.EvidenceFor},
		{"Evidence against the thought", &r.EvidenceAgainst},
		{"A more balanced thought", &r.BalancedThought},
		{"How do you feel now?", &r.NewEmotion},
	}
	for _, q := range questions {
		text, err := GetSimpleText(a.reader, q.prompt, a.out)
		if err != nil {
			return err
		}
		*q.dst = text
	}
	if r.Situation == "" || r.AutomaticThought == "" {
		return errors.New("a situation and a thought are needed")
	}

	row, err := persist(ctx, a, syncqueue.TypeThoughtRecord, r, a.store.AddThoughtRecord)
	if err != nil {
		return err
	}
	if row != nil {
		a.println("Thought record saved.")
	}
	return nil
}

func (a *App) erpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "erp",
		Short:       "Exposure and response prevention sessions",
		Annotations: loginRequired(),
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Show recent ERP sessions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			sessions := head(a.store.Snapshot().ErpSessions, limit)
			if len(sessions) == 0 {
				a.println("No ERP sessions yet.")
				return
			}
			for _, s := range sessions {
				state := "in progress"
				if s.Completed {
					state = fmt.Sprintf("done, anxiety %d -> %d", s.AnxietyBefore, s.AnxietyAfter)
				}
				a.printf("%s  %s  %s (%d min, %s)\n", s.ID, s.CreatedAt.Local().Format(timeLayout), s.Exposure, s.Duration, state)
			}
		},
	}
	limitFlag(list, &limit)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start an exposure",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.startErp(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "complete <id>",
			Short: "Finish an exposure and rate your anxiety",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.completeErp(cmd.Context(), args[0])
			},
		},
		list,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete an ERP session",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.requireOnline(); err != nil {
					return err
				}
				if !a.store.DeleteErpSession(cmd.Context(), args[0]) {
					return errors.New("could not delete the session")
				}
				a.println("Deleted.")
				return nil
			},
		},
	)
	return cmd
}

func (a *App) startErp(ctx context.Context) error {
	picked, err := GetChoices(a.reader, "Exposure (number or describe your own)", a.catalog.Tracking.Exposures, a.out)
	if err != nil {
		return err
	}
	if len(picked) == 0 {
		return errors.New("an exposure is needed")
	}
	before, err := GetInt(a.reader, "Anxiety before", 1, 10, a.out)
	if err != nil {
		return err
	}
	duration, err := GetInt(a.reader, "Planned duration in minutes", 1, 240, a.out)
	if err != nil {
		return err
	}

	session := entities.ErpSession{
		Exposure:      strings.Join(picked, ", "),
		AnxietyBefore: before,
		Duration:      duration,
	}
	row, err := persist(ctx, a, syncqueue.TypeErpSession, session, a.store.AddErpSession)
	if err != nil {
		return err
	}
	if row != nil {
		a.printf("Session %s started. Resist the compulsion; run 'erp complete %s' when done.\n", row.ID, row.ID)
	}
	return nil
}

func (a *App) completeErp(ctx context.Context, id string) error {
	if err := a.requireOnline(); err != nil {
		return err
	}
	after, err := GetInt(a.reader, "Anxiety after", 1, 10, a.out)
	if err != nil {
		return err
	}
	row := a.store.CompleteErpSession(ctx, id, &after)
	if row == nil {
		return errNotSaved
	}
	a.printf("Well done! Anxiety went from %d to %d.\n", row.AnxietyBefore, row.AnxietyAfter)
	return nil
}
