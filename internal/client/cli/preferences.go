package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hopekeeper/internal/client/settings"
)

// setters maps "settings set" keys onto fields of settings.Settings.
var setters = map[string]func(*settings.Settings, string) error{
	"font-size": func(s *settings.Settings, v string) error {
		n, err := parseInRange(v, 12, 24)
		if err != nil {
			return fmt.Errorf("font-size must be 12-24")
		}
		s.Accessibility.FontSize = n
		return nil
	},
	"high-contrast":   boolSetter(func(s *settings.Settings) *bool { return &s.Accessibility.HighContrast }),
	"reduced-motion":  boolSetter(func(s *settings.Settings) *bool { return &s.Accessibility.ReducedMotion }),
	"screen-reader":   boolSetter(func(s *settings.Settings) *bool { return &s.Accessibility.ScreenReader }),
	"data-collection": boolSetter(func(s *settings.Settings) *bool { return &s.Privacy.DataCollection }),
	"analytics":       boolSetter(func(s *settings.Settings) *bool { return &s.Privacy.Analytics }),
	"crash-reporting": boolSetter(func(s *settings.Settings) *bool { return &s.Privacy.CrashReporting }),
	"anonymous-usage": boolSetter(func(s *settings.Settings) *bool { return &s.Privacy.AnonymousUsage }),
	"notifications":   boolSetter(func(s *settings.Settings) *bool { return &s.Privacy.Notifications }),
	"data-retention": func(s *settings.Settings, v string) error {
		switch v {
		case "6months", "1year", "2years", "indefinite":
			s.Privacy.DataRetention = v
			return nil
		}
		return fmt.Errorf("data-retention must be one of 6months, 1year, 2years, indefinite")
	},
}

func boolSetter(field func(*settings.Settings) *bool) func(*settings.Settings, string) error {
	return func(s *settings.Settings, v string) error {
		switch strings.ToLower(v) {
		case "on":
			v = "true"
		case "off":
			v = "false"
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected on or off, got %q", v)
		}
		*field(s) = b
		return nil
	}
}

func settingKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (a *App) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Accessibility and privacy settings on this device",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			s := a.Settings()
			a.println("Accessibility:")
			a.printf("  font-size        %d\n", s.Accessibility.FontSize)
			a.printf("  high-contrast    %s\n", onOff(s.Accessibility.HighContrast))
			a.printf("  reduced-motion   %s\n", onOff(s.Accessibility.ReducedMotion))
			a.printf("  screen-reader    %s\n", onOff(s.Accessibility.ScreenReader))
			a.println("Privacy:")
			a.printf("  data-collection  %s\n", onOff(s.Privacy.DataCollection))
			a.printf("  analytics        %s\n", onOff(s.Privacy.Analytics))
			a.printf("  crash-reporting  %s\n", onOff(s.Privacy.CrashReporting))
			a.printf("  anonymous-usage  %s\n", onOff(s.Privacy.AnonymousUsage))
			a.printf("  notifications    %s\n", onOff(s.Privacy.Notifications))
			a.printf("  data-retention   %s\n", s.Privacy.DataRetention)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting; keys: " + strings.Join(settingKeys(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, ok := setters[args[0]]
			if !ok {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			var setErr error
			err := a.updateSettings(cmd.Context(), func(s settings.Settings) settings.Settings {
				next := s
				if setErr = set(&next, args[1]); setErr != nil {
					return s
				}
				return next
			})
			if setErr != nil {
				return setErr
			}
			if err != nil {
				return err
			}
			a.println("Saved.")
			return nil
		},
	})
	return cmd
}

func (a *App) notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Reminders and encouragement",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			list := a.Settings().Notifications
			if len(list) == 0 {
				a.println("No notifications.")
				return
			}
			for _, n := range list {
				mark := "*"
				if n.Read {
					mark = " "
				}
				a.printf("%s %s  %s  %s\n", mark, n.ID, n.Timestamp.Local().Format(timeLayout), n.Title)
				a.printf("    %s\n", n.Message)
			}
		},
	}
	change := func(use, short string, fn func(settings.Settings, string) settings.Settings) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.updateSettings(cmd.Context(), func(s settings.Settings) settings.Settings {
					return fn(s, args[0])
				})
			},
		}
	}
	cmd.AddCommand(
		change("read", "Mark a notification as read", settings.Settings.MarkRead),
		change("remove", "Delete a notification", settings.Settings.RemoveNotification),
	)
	return cmd
}
