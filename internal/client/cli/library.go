package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hopekeeper/internal/content"
	"github.com/dmitrijs2005/hopekeeper/internal/entities"
	"github.com/dmitrijs2005/hopekeeper/internal/filex"
	"github.com/dmitrijs2005/hopekeeper/internal/netx"
)

func (a *App) learnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Education library about OCD and its treatment",
	}

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "Show articles, videos and exercises",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			done := a.completedContent()
			for _, it := range a.catalog.EducationByCategory(category) {
				mark := " "
				if done[it.ID] {
					mark = "x"
				}
				a.printf("[%s] %-26s %s (%s, %d min, %s)\n", mark, it.ID, it.Title, it.Type, it.Duration, it.Difficulty)
			}
		},
	}
	var names []string
	for _, c := range a.catalog.Education.Categories {
		names = append(names, c.ID)
	}
	list.Flags().StringVarP(&category, "category", "c", "all", "one of: "+strings.Join(names, ", "))

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "show <id>",
			Short: "Read an item",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				it, ok := a.catalog.EducationItem(args[0])
				if !ok {
					return fmt.Errorf("unknown item %q", args[0])
				}
				a.println(a.render(educationMarkdown(it)))
				return nil
			},
		},
		&cobra.Command{
			Use:         "complete <id>",
			Short:       "Mark an item as finished",
			Args:        cobra.ExactArgs(1),
			Annotations: loginRequired(),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.completeEducation(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func educationMarkdown(it content.EducationItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n*%s, %d min, %s, by %s*\n\n%s\n\n", it.Title, it.Type, it.Duration, it.Difficulty, it.Author, it.Description)
	if len(it.KeyPoints) > 0 {
		b.WriteString("## Key points\n\n")
		for _, p := range it.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	return b.String()
}

func (a *App) completedContent() map[string]bool {
	done := map[string]bool{}
	for _, p := range a.store.Snapshot().EducationProgress {
		if p.Completed {
			done[p.ContentID] = true
		}
	}
	return done
}

func (a *App) completeEducation(ctx context.Context, id string) error {
	if _, ok := a.catalog.EducationItem(id); !ok {
		return fmt.Errorf("unknown item %q", id)
	}
	if a.completedContent()[id] {
		a.println("Already completed.")
		return nil
	}
	if err := a.requireOnline(); err != nil {
		return err
	}
	row := a.store.AddEducationProgress(ctx, entities.EducationProgress{
		ContentID:          id,
		ContentType:        "educational",
		ProgressPercentage: 100,
		Completed:          true,
	})
	if row == nil {
		return errNotSaved
	}
	a.println("Nice work, marked as completed.")
	return nil
}

type audioLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (a *App) audioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audio <track-id>",
		Short: "Download the audio of a meditation or sleep track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.downloadTrack(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("Saved to %s\n", path)
			return nil
		},
	}
}

// downloadTrack asks the content API for a presigned link and stores the
// file under <data dir>/audio.
func (a *App) downloadTrack(ctx context.Context, id string) (string, error) {
	if _, ok := a.catalog.Track(id); !ok {
		return "", fmt.Errorf("unknown track %q", id)
	}

	var link audioLink
	endpoint := strings.TrimRight(a.config.ContentEndpointAddr, "/") + "/api/v1/audio/" + url.PathEscape(id)
	if err := netx.GetJSON(ctx, endpoint, &link); err != nil {
		a.logger.Warn(ctx, "audio link", "track", id, "error", err)
		return "", fmt.Errorf("audio is not available right now")
	}

	return filex.WriteFile(filepath.Join(a.config.DataDir, "audio"), id+".mp3", func(w io.Writer) error {
		_, err := netx.Download(ctx, link.URL, w)
		return err
	})
}
