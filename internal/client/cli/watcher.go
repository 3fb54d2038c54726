package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hopekeeper/internal/client/settings"
)

const pingTimeout = 3 * time.Second

// StartOnlineStatusWatcher pings the server every interval until ctx is
// done and flips the mode on every change.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// checkOnline runs one ping. Going online with a signed-in user reconnects
// an offline session, drains the offline queue and reloads the cache.
func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	if a.Mode() == ModeOnline {
		return
	}
	a.setMode(ModeOnline)

	if a.isLoggedIn() {
		a.resume(ctx)
	}
}

func (a *App) resume(ctx context.Context) {
	if id := a.Identity(); id != nil && id.Offline {
		fresh, err := a.authService.Reconnect(ctx)
		if err != nil {
			a.logger.Warn(ctx, "reconnect failed", "error", err)
			return
		}
		a.setIdentity(fresh)
	}

	res, err := a.queue.Sync(ctx, a.userID())
	if err != nil {
		a.logger.Error(ctx, "offline queue sync", "error", err)
	} else if res.Replayed > 0 || res.Remaining > 0 {
		a.logger.Info(ctx, "offline queue synced", "replayed", res.Replayed, "remaining", res.Remaining)
	}

	a.store.LoadAll(ctx)
}

// StartReminder posts the daily check-in notification at every
// settings.NextReminder until ctx is done. Nothing is posted while
// notifications are switched off in the privacy settings.
func (a *App) StartReminder(ctx context.Context) {
	for {
		timer := time.NewTimer(settings.NextReminder(a.now()).Sub(a.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			a.postReminder(ctx)
		}
	}
}

func (a *App) postReminder(ctx context.Context) {
	if !a.Settings().Privacy.Notifications {
		return
	}
	err := a.updateSettings(ctx, func(s settings.Settings) settings.Settings {
		return s.AddNotification(settings.DailyCheckIn(a.now()))
	})
	if err != nil {
		a.logger.Error(ctx, "save reminder", "error", err)
	}
}
