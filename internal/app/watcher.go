package app

import (
	"context"
	"os"
	"time"

	"github.com/five82/carousel/internal/deck"
	"github.com/five82/carousel/internal/logging"
	"github.com/five82/carousel/internal/state"
)

const (
	defaultWatchInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// stamp identifies a version of the deck file.
type stamp struct {
	modTime time.Time
	size    int64
}

// Watcher polls a deck file and delivers a freshly parsed deck whenever the
// file changes. Read and parse failures are recorded in the store and back
// off exponentially until the file loads again.
type Watcher struct {
	path     string
	interval time.Duration
	store    *state.Store
	logger   *logging.Logger

	last     stamp
	failures int
}

// NewWatcher returns a watcher for path. A non-positive interval uses the
// default.
func NewWatcher(path string, interval time.Duration, store *state.Store, logger *logging.Logger) *Watcher {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	if logger == nil {
		logger = logging.Discard()
	}
	w := &Watcher{
		path:     path,
		interval: interval,
		store:    store,
		logger:   logger.Component("watcher"),
	}
	if st, err := statDeck(path); err == nil {
		w.last = st
	}
	return w
}

// Start launches the polling goroutine. The returned channel is closed when
// ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) <-chan deck.Deck {
	out := make(chan deck.Deck)
	go func() {
		defer close(out)
		timer := time.NewTimer(w.interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if d, changed := w.check(); changed {
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
			timer.Reset(calculateBackoff(w.failures, w.interval))
		}
	}()
	return out
}

// check reports a reloaded deck when the file changed and parses cleanly.
func (w *Watcher) check() (deck.Deck, bool) {
	st, err := statDeck(w.path)
	if err != nil {
		w.fail(err)
		return deck.Deck{}, false
	}
	if st.equal(w.last) {
		if w.failures > 0 {
			w.clearFailures()
		}
		return deck.Deck{}, false
	}

	d, err := deck.Load(w.path)
	if err != nil {
		w.fail(err)
		return deck.Deck{}, false
	}

	w.last = st
	w.failures = 0
	w.logger.Info("deck changed", "path", w.path, "slides", len(d.Slides))
	return d, true
}

func (w *Watcher) fail(err error) {
	w.failures++
	if w.store != nil {
		w.store.UpdateDeck(w.path, "", err)
	}
	w.logger.Warn("deck reload failed",
		"path", w.path,
		"failures", w.failures,
		"retry_in", calculateBackoff(w.failures, w.interval),
		"error", err,
	)
}

// clearFailures clears a failure streak when the file turns out to be unchanged,
// such as after a transient stat error.
func (w *Watcher) clearFailures() {
	w.failures = 0
	if w.store != nil {
		w.store.UpdateDeck(w.path, w.store.Snapshot().DeckTitle, nil)
	}
	w.logger.Info("deck readable again", "path", w.path)
}

func (s stamp) equal(other stamp) bool {
	return s.size == other.size && s.modTime.Equal(other.modTime)
}

func statDeck(path string) (stamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return stamp{}, err
	}
	return stamp{modTime: info.ModTime(), size: info.Size()}, nil
}

// calculateBackoff doubles the base interval for each consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
