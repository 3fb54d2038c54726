package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hopekeeper/internal/client/syncqueue"
	"github.com/dmitrijs2005/hopekeeper/internal/content"
	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

func (a *App) printTracks(title string, tracks []content.Track) {
	a.println(title)
	for _, t := range tracks {
		if t.Duration > 0 {
			a.printf("  %-24s %s (%d min)\n", t.ID, t.Title, t.Duration)
		} else {
			a.printf("  %-24s %s\n", t.ID, t.Title)
		}
		if t.Description != "" {
			a.printf("  %-24s %s\n", "", t.Description)
		}
	}
}

func optional(v int, ok bool) *int {
	if !ok {
		return nil
	}
	return &v
}

func (a *App) meditateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meditate",
		Short: "Guided and quick meditations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show available meditations",
			Args:  cobra.NoArgs,
			Run: func(*cobra.Command, []string) {
				a.printTracks("Guided:", a.catalog.Meditation.Guided)
				a.printTracks("Quick relief:", a.catalog.Meditation.Quick)
			},
		},
		&cobra.Command{
			Use:         "done <id>",
			Short:       "Log a finished meditation",
			Args:        cobra.ExactArgs(1),
			Annotations: loginRequired(),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.logMeditation(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func (a *App) logMeditation(ctx context.Context, id string) error {
	track, ok := a.catalog.Track(id)
	if !ok {
		return fmt.Errorf("unknown meditation %q", id)
	}
	rating, rated, err := GetOptionalInt(a.reader, "How was it? (blank to skip)", 1, 5, a.out)
	if err != nil {
		return err
	}

	session := entities.MeditationSession{
		SessionType: track.Title,
		Duration:    track.Duration,
		Completed:   true,
		Rating:      optional(rating, rated),
	}
	row, err := persist(ctx, a, syncqueue.TypeMeditationSession, session, a.store.AddMeditationSession)
	if err != nil {
		return err
	}
	if row != nil {
		a.printf("Logged %s. Well done for taking this time.\n", track.Title)
	}
	return nil
}

func (a *App) sleepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Sleep stories, sounds and breathing",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the sleep library",
			Args:  cobra.NoArgs,
			Run: func(*cobra.Command, []string) {
				a.printTracks("Stories:", a.catalog.Sleep.Stories)
				a.printTracks("Sounds:", a.catalog.Sleep.Sounds)
				a.printTracks("Breathing:", a.catalog.Sleep.Breathing)
			},
		},
		&cobra.Command{
			Use:         "done <id>",
			Short:       "Log a finished sleep session",
			Args:        cobra.ExactArgs(1),
			Annotations: loginRequired(),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.logSleep(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func (a *App) logSleep(ctx context.Context, id string) error {
	track, ok := a.catalog.Track(id)
	if !ok {
		return fmt.Errorf("unknown sleep session %q", id)
	}
	quality, rated, err := GetOptionalInt(a.reader, "How did you sleep? (blank to skip)", 1, 5, a.out)
	if err != nil {
		return err
	}

	session := entities.SleepSession{
		SessionType:  track.ID,
		Duration:     optional(track.Duration, track.Duration > 0),
		Completed:    true,
		SleepQuality: optional(quality, rated),
	}
	row, err := persist(ctx, a, syncqueue.TypeSleepSession, session, a.store.AddSleepSession)
	if err != nil {
		return err
	}
	if row != nil {
		a.println("Sleep session logged. Rest well.")
	}
	return nil
}

func (a *App) crisisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crisis",
		Short: "Immediate help: hotlines and grounding",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			a.println("You're not alone. If you are in danger, reach out now:")
			for _, h := range a.catalog.Crisis.Hotlines {
				a.printf("  %-22s %-26s %s\n", h.Title, h.Subtitle, h.Link)
			}
			a.println("Grounding exercises (run 'crisis ground <id>'):")
			for _, g := range a.catalog.Crisis.Grounding {
				a.printf("  %-16s %s: %s\n", g.ID, g.Title, g.Description)
			}
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "ground <id>",
			Short: "Walk through a grounding exercise",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.ground(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "sounds",
			Short: "List calming sounds",
			Args:  cobra.NoArgs,
			Run: func(*cobra.Command, []string) {
				for _, s := range a.catalog.Crisis.CalmingSounds {
					a.printf("  %-18s %s (%s)\n", s.ID, s.Title, s.Duration)
				}
			},
		},
	)
	return cmd
}

// ground steps through an exercise one Enter at a time. Signed-in users get
// a crisis log entry for the finished exercise.
func (a *App) ground(ctx context.Context, id string) error {
	ex, ok := a.catalog.Grounding(id)
	if !ok {
		return fmt.Errorf("unknown exercise %q", id)
	}

	started := a.now()
	a.printf("%s\n%s\n", ex.Title, ex.Description)
	for i, step := range ex.Steps {
		if _, err := GetSimpleText(a.reader, fmt.Sprintf("Step %d/%d: %s (Enter when ready)", i+1, len(ex.Steps), step), a.out); err != nil {
			return err
		}
	}
	a.println("Well done. Notice how you feel now.")

	if !a.isLoggedIn() {
		return nil
	}
	rating, rated, err := GetOptionalInt(a.reader, "Did it help? (blank to skip)", 1, 5, a.out)
	if err != nil {
		return err
	}
	minutes := int(a.now().Sub(started) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}

	entry := entities.CrisisLog{
		ToolUsed:            ex.ID,
		Duration:            &minutes,
		EffectivenessRating: optional(rating, rated),
		Notes:               "Completed crisis toolkit exercise",
	}
	_, err = persist(ctx, a, syncqueue.TypeCrisisLog, entry, a.store.AddCrisisLog)
	return err
}
