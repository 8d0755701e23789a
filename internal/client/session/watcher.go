package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/dessertai/internal/logging"
)

// DefaultInterval is used when Watcher.Interval is not set.
const DefaultInterval = time.Second

// Probe reports whether the credential is still persisted.
type Probe func(ctx context.Context) (bool, error)

// Watcher polls Probe while a view that started authenticated is mounted.
// The first time the credential is gone it calls Reload once and stops.
type Watcher struct {
	Probe    Probe
	Interval time.Duration
	Reload   func()
	Logger   logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Start begins polling in the background. It does nothing when the view
// started unauthenticated or when a poll loop is already running. Reload
// is read once, here.
func (w *Watcher) Start(ctx context.Context, initiallyAuthenticated bool) {
	if !initiallyAuthenticated {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil {
		select {
		case <-w.done:
		default:
			return
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.cancel, w.done = cancel, done
	onReload := w.Reload

	go func() {
		reload := w.poll(ctx)
		cancel()
		close(done)
		if reload && onReload != nil {
			onReload()
		}
	}()
}

func (w *Watcher) poll(ctx context.Context) bool {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	log := w.Logger
	if log == nil {
		log = logging.Discard()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			present, err := w.Probe(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return false
				}
				log.Warn(ctx, "session probe failed", "error", err)
				continue
			}
			if !present {
				log.Info(ctx, "credential removed, reloading view")
				return true
			}
		case <-ctx.Done():
			return false
		}
	}
}

// Stop ends polling and waits for the loop to exit. It is safe to call
// more than once, and from inside Reload.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether a poll loop is active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done == nil {
		return false
	}
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}
