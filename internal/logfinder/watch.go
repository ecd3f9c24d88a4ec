package logfinder

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleDelay groups the writes of one log into a single notification.
const settleDelay = 250 * time.Millisecond

// Watch reports log files written in dir until ctx is done. Each path is
// sent once its writes have settled. The channel is closed on return.
func Watch(ctx context.Context, dir string, logger *zap.Logger) (<-chan string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer w.Close()

		pending := make(map[string]time.Time)
		ticker := time.NewTicker(settleDelay / 2)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !strings.EqualFold(filepath.Ext(ev.Name), LogExt) {
					continue
				}
				if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) {
					pending[ev.Name] = time.Now()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("log watcher", zap.Error(err))
			case now := <-ticker.C:
				for path, last := range pending {
					if now.Sub(last) < settleDelay {
						continue
					}
					delete(pending, path)
					select {
					case out <- path:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()
	return out, nil
}
