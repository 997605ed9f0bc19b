package session

import (
	"context"
	"time"

	pkgLog "calendar-assistant/pkg/log"
)

// StartSweeper runs store.Sweep every interval until ctx is done.
func StartSweeper(ctx context.Context, l pkgLog.Logger, store Store, interval, maxAge time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if removed := store.Sweep(now, maxAge); removed > 0 {
					l.Infof(ctx, "%s: removed %d idle session(s), %d remaining", LogPrefixSweeper, removed, store.Len())
				}
			}
		}
	}()
}
