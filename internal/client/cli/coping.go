package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hopekeeper/internal/content"
)

func (a *App) copeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cope",
		Short: "Coping strategies for anxiety and intrusive thoughts",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			a.println("Coping strategies (run 'cope show <id>'):")
			for _, s := range a.catalog.Coping.Strategies {
				a.printf("  %-12s %s: %s\n", s.ID, s.Title, s.Description)
			}
		},
	}

	var cycles int
	breathe := &cobra.Command{
		Use:   "breathe",
		Short: "Guided 4-7-8 breathing counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.breathe(cmd.Context(), cycles)
		},
	}
	breathe.Flags().IntVarP(&cycles, "cycles", "c", a.catalog.Coping.Breathing.Cycles, "how many cycles to count")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show the steps of a strategy",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return a.showStrategy(args[0])
			},
		},
		breathe,
	)
	return cmd
}

func (a *App) showStrategy(id string) error {
	s, ok := a.catalog.Strategy(id)
	if !ok {
		return fmt.Errorf("unknown strategy %q", id)
	}
	a.printf("%s\n%s\n\nInstructions:\n", s.Title, s.Description)
	for i, step := range s.Instructions {
		a.printf("  %d. %s\n", i+1, step)
	}
	if s.ID == a.catalog.Coping.Breathing.Strategy {
		a.println("\nRun 'cope breathe' for a guided count.")
	}
	return nil
}

// breathe counts the breathing pattern out loud, waiting out each phase.
// Cancelling ctx stops the count.
func (a *App) breathe(ctx context.Context, cycles int) error {
	pattern := a.catalog.Coping.Breathing
	if cycles < 1 {
		return fmt.Errorf("cycles must be at least 1")
	}

	a.printf("Follow the count. %d cycles, about %s.\n", cycles, time.Duration(cycles)*pattern.CycleLength())
	for i := 1; i <= cycles; i++ {
		for _, p := range pattern.Phases {
			a.printf("Cycle %d/%d: %s for %d...\n", i, cycles, p.Name, p.Seconds)
			if err := a.wait(ctx, time.Duration(p.Seconds)*time.Second); err != nil {
				return err
			}
		}
	}
	a.println("Breathing complete. Notice how you feel now.")
	return nil
}

func (a *App) wait(ctx context.Context, d time.Duration) error {
	if a.pause != nil {
		return a.pause(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var resourceSections = []string{"crisis", "organizations", "therapy", "books", "apps"}

func (a *App) resourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "resources [section]",
		Short:     "Helplines, OCD organizations, therapy types, books and apps",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: resourceSections,
		Run: func(_ *cobra.Command, args []string) {
			sections := resourceSections
			if len(args) == 1 {
				sections = args
			}
			a.printResources(a.catalog.Resources, sections)
		},
	}
}

func (a *App) printResources(r content.Resources, sections []string) {
	for i, section := range sections {
		if i > 0 {
			a.println("")
		}
		switch section {
		case "crisis":
			a.println("Crisis support. If you're in immediate danger or having thoughts of self-harm, please reach out now:")
			for _, c := range r.Crisis {
				a.printf("  %-38s %-22s %s\n", c.Title, c.Contact, c.Link())
				a.printf("  %-38s %s\n", "", c.Description)
			}
		case "organizations":
			a.println("OCD organizations:")
			for _, o := range r.Organizations {
				a.printf("  %-30s %s\n", o.Title, o.URL)
				a.printf("  %-30s %s\n", "", o.Description)
			}
		case "therapy":
			a.println("Types of therapy:")
			for _, t := range r.Therapies {
				a.printf("  %s: %s\n", t.Title, t.Description)
			}
			a.printf("Finding a therapist: %s\n", r.FindingTherapist)
		case "books":
			a.println("Recommended books:")
			for _, b := range r.SelfHelpByType(content.SelfHelpBook) {
				a.printf("  %s by %s: %s\n", b.Title, b.Author, b.Description)
			}
		case "apps":
			a.println("Helpful apps:")
			for _, app := range r.SelfHelpByType(content.SelfHelpApp) {
				a.printf("  %s: %s\n", app.Title, app.Description)
			}
			a.printf("\nNote: %s\n", r.Note)
		}
	}
}
