package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hopekeeper/internal/export"
	"github.com/dmitrijs2005/hopekeeper/internal/progress"
)

func (a *App) progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "progress",
		Short:       "Your statistics and achievements",
		Args:        cobra.NoArgs,
		Annotations: loginRequired(),
		Run: func(cmd *cobra.Command, _ []string) {
			a.showProgress(cmd.Context())
		},
	}
}

// showProgress prints the stats and stores achievements earned since the
// last time, when the server is reachable.
func (a *App) showProgress(ctx context.Context) {
	data := a.store.Snapshot()
	stats := progress.Compute(data.MoodEntries, data.ThoughtRecords, data.ErpSessions)

	a.printf("Days tracked:        %d\n", stats.TotalDays)
	a.printf("Average mood:        %.1f/10\n", stats.AverageMood)
	a.printf("Average anxiety:     %.1f/10\n", stats.AverageAnxiety)
	a.printf("Thought records:     %d\n", stats.ThoughtRecords)
	a.printf("ERP completion rate: %d%%\n", stats.ErpCompletionRate)
	a.printf("Mood trend:          %s\n", stats.TrendLabel())

	if a.Mode() == ModeOnline {
		for _, row := range progress.Award(ctx, a.store, stats, data.Achievements) {
			a.printf("New achievement: %s! %s\n", row.Title, row.Description)
		}
	}

	a.println("Achievements:")
	for _, ach := range progress.Achievements(stats) {
		mark := "  "
		if ach.Earned {
			mark = ach.Icon
		}
		a.printf("  %s %s: %s\n", mark, ach.Title, ach.Description)
	}
}

func (a *App) exportCmd() *cobra.Command {
	var (
		format   string
		selected []string
	)
	var ids []string
	for _, s := range export.Selections {
		ids = append(ids, s.ID)
	}

	cmd := &cobra.Command{
		Use:         "export",
		Short:       "Save your data to a JSON or CSV file",
		Args:        cobra.NoArgs,
		Annotations: loginRequired(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			path, err := a.export(f, selected)
			if err != nil {
				return err
			}
			a.printf("Exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "json or csv")
	cmd.Flags().StringSliceVarP(&selected, "include", "i", export.DefaultSelection, "what to include: "+strings.Join(ids, ", "))
	return cmd
}

func (a *App) export(f export.Format, selected []string) (string, error) {
	id := a.Identity()
	if id == nil {
		return "", errNotLoggedIn
	}
	data := a.store.Snapshot()
	now := a.now()

	doc, err := export.Build(export.User{ID: id.UserID, Email: id.Email}, export.Data{
		MoodEntries:        data.MoodEntries,
		ThoughtRecords:     data.ThoughtRecords,
		ErpSessions:        data.ErpSessions,
		MeditationSessions: data.MeditationSessions,
		SleepSessions:      data.SleepSessions,
		ChatSessions:       data.ChatSessions,
	}, selected, now)
	if err != nil {
		return "", err
	}
	return export.Save(a.config.DataDir, f, doc, now)
}

func (a *App) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "sync",
		Short:       "Send offline changes and reload your data",
		Args:        cobra.NoArgs,
		Annotations: loginRequired(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Sync(cmd.Context())
		},
	}
}

// Sync replays the offline queue and reloads the cache.
func (a *App) Sync(ctx context.Context) error {
	if err := a.requireOnline(); err != nil {
		return fmt.Errorf("%w; %d change(s) waiting", err, a.queue.Len(ctx, a.userID()))
	}

	res, err := a.queue.Sync(ctx, a.userID())
	if err != nil {
		return err
	}
	switch {
	case res.Skipped:
		a.println("A sync is already running.")
	case res.Remaining > 0:
		a.printf("Sent %d change(s); %d could not be sent and will be retried.\n", res.Replayed, res.Remaining)
	case res.Replayed > 0:
		a.printf("Sent %d change(s).\n", res.Replayed)
	}

	if !a.store.LoadAll(ctx) {
		return fmt.Errorf("could not refresh your data")
	}
	a.println("Up to date.")
	return nil
}
