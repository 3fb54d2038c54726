package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hopekeeper/internal/client/settings"
)

func TestSettingsSet(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(*testing.T, settings.Settings)
	}{
		{"font-size", "18", func(t *testing.T, s settings.Settings) { assert.Equal(t, 18, s.Accessibility.FontSize) }},
		{"high-contrast", "on", func(t *testing.T, s settings.Settings) { assert.True(t, s.Accessibility.HighContrast) }},
		{"screen-reader", "true", func(t *testing.T, s settings.Settings) { assert.True(t, s.Accessibility.ScreenReader) }},
		{"notifications", "OFF", func(t *testing.T, s settings.Settings) { assert.False(t, s.Privacy.Notifications) }},
		{"data-retention", "2years", func(t *testing.T, s settings.Settings) { assert.Equal(t, "2years", s.Privacy.DataRetention) }},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			ta := newTestApp(t)
			require.NoError(t, ta.run(t, "settings", "set", tt.key, tt.value))
			tt.check(t, ta.Settings())

			stored, err := settings.Load(context.Background(), ta.prefs)
			require.NoError(t, err)
			tt.check(t, stored)
		})
	}
}

func TestSettingsSet_Invalid(t *testing.T) {
	ta := newTestApp(t)
	before := ta.Settings()

	assert.ErrorContains(t, ta.run(t, "settings", "set", "font-size", "40"), "12-24")
	assert.ErrorContains(t, ta.run(t, "settings", "set", "analytics", "maybe"), "expected on or off")
	assert.ErrorContains(t, ta.run(t, "settings", "set", "data-retention", "forever"), "data-retention must be")
	assert.ErrorContains(t, ta.run(t, "settings", "set", "theme", "dark"), "unknown setting")

	assert.Equal(t, before, ta.Settings())
}

func TestSettingsShow(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "settings"))
	assert.Contains(t, ta.out.String(), "font-size        16")
	assert.Contains(t, ta.out.String(), "data-retention   1year")
}

func TestNotifications(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	n := settings.DailyCheckIn(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, ta.updateSettings(ctx, func(s settings.Settings) settings.Settings {
		return s.AddNotification(n)
	}))

	require.NoError(t, ta.run(t, "notifications"))
	assert.Contains(t, ta.out.String(), "* "+n.ID)
	assert.Equal(t, 1, ta.Settings().Unread())

	require.NoError(t, ta.run(t, "notifications", "read", n.ID))
	assert.Equal(t, 0, ta.Settings().Unread())

	require.NoError(t, ta.run(t, "notifications", "remove", n.ID))
	assert.Empty(t, ta.Settings().Notifications)

	ta.out.Reset()
	require.NoError(t, ta.run(t, "notifications"))
	assert.Contains(t, ta.out.String(), "No notifications.")
}
