// Package settings reads and writes the preferences kept only on this
// device: accessibility, privacy and the notification inbox. Each is one
// JSON document in the metadata table. Load and Save are the only places
// that touch storage; everything else works on a Settings value.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hopekeeper/internal/chat"
)

const (
	KeyAccessibility = "accessibility-settings"
	KeyPrivacy       = "privacy-settings"
	KeyNotifications = "notifications"

	MaxNotifications = 20
)

// Repository is the keyed blob store; metadata.Repository satisfies it.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type Accessibility struct {
	FontSize      int  `json:"fontSize"`
	HighContrast  bool `json:"highContrast"`
	ReducedMotion bool `json:"reducedMotion"`
	ScreenReader  bool `json:"screenReader"`
}

// Markdown reports whether replies may be rendered as styled markdown.
// Screen readers get plain text.
func (a Accessibility) Markdown() bool { return !a.ScreenReader }

// Delay is the chat thinking delay to use; reduced motion turns it off.
func (a Accessibility) Delay(d chat.Delay) chat.Delay {
	if a.ReducedMotion {
		return chat.Delay{}
	}
	return d
}

type Privacy struct {
	DataCollection bool   `json:"dataCollection"`
	Analytics      bool   `json:"analytics"`
	CrashReporting bool   `json:"crashReporting"`
	AnonymousUsage bool   `json:"anonymousUsage"`
	Notifications  bool   `json:"notifications"`
	DataRetention  string `json:"dataRetention"`
}

// Notification types.
const (
	NotificationReminder      = "reminder"
	NotificationEncouragement = "encouragement"
	NotificationMilestone     = "milestone"
	NotificationTip           = "tip"
)

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	ActionURL string    `json:"actionUrl,omitempty"`
}

// Settings is the full local preference state.
type Settings struct {
	Accessibility Accessibility
	Privacy       Privacy
	Notifications []Notification
}

func Defaults() Settings {
	return Settings{
		Accessibility: Accessibility{FontSize: 16},
		Privacy: Privacy{
			DataCollection: true,
			CrashReporting: true,
			AnonymousUsage: true,
			Notifications:  true,
			DataRetention:  "1year",
		},
	}
}

// Load reads all three documents. Missing documents keep their defaults.
// A malformed document also keeps its default and is reported in the
// returned error together with any storage error; the Settings value is
// usable either way.
func Load(ctx context.Context, repo Repository) (Settings, error) {
	s := Defaults()
	errs := []error{
		loadKey(ctx, repo, KeyAccessibility, &s.Accessibility),
		loadKey(ctx, repo, KeyPrivacy, &s.Privacy),
		loadKey(ctx, repo, KeyNotifications, &s.Notifications),
	}
	return s, errors.Join(errs...)
}

func loadKey[T any](ctx context.Context, repo Repository, key string, dst *T) error {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = v
	return nil
}

// Save writes all three documents.
func Save(ctx context.Context, repo Repository, s Settings) error {
	notifications := s.Notifications
	if notifications == nil {
		notifications = []Notification{}
	}
	docs := []struct {
		key string
		v   any
	}{
		{KeyAccessibility, s.Accessibility},
		{KeyPrivacy, s.Privacy},
		{KeyNotifications, notifications},
	}
	for _, d := range docs {
		raw, err := json.Marshal(d.v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		if err := repo.Set(ctx, d.key, raw); err != nil {
			return err
		}
	}
	return nil
}
