package cli

import (
	"context"
	"time"

	"github.com/firflight/firflight/internal/i18n"
)

const pingTimeout = 3 * time.Second

// StartOnlineStatusWatcher pings the server every interval until ctx is
// done, switching the mode and uploading queued analytics when the server
// is reachable. A non-positive interval disables it.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	a.checkOnline(ctx)

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

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.session.Ping(pingCtx)
	cancel()

	if err != nil {
		if a.setMode(ModeOffline) {
			a.logger.Info(ctx, "switched to offline mode", "error", err)
			a.println(a.msgs.T(i18n.MsgOffline))
		}
		return
	}

	if a.setMode(ModeOnline) {
		a.logger.Info(ctx, "switched to online mode")
		a.println(a.msgs.T(i18n.MsgOnline))
	}
	a.flushEvents(ctx)
}

func (a *App) flushEvents(ctx context.Context) {
	if a.queue == nil || a.sender == nil {
		return
	}
	n, err := a.queue.Flush(ctx, a.sender)
	if err != nil {
		a.logger.Warn(ctx, "failed to upload events", "error", err)
		return
	}
	if n > 0 {
		a.logger.Debug(ctx, "events uploaded", "count", n)
	}
}
