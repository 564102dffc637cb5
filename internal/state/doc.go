// Package state provides thread-safe state sharing for carousel.
//
// # Overview
//
// The Store is the coordination point between the slider engine (running on
// the UI or headless loop goroutine), the deck watcher goroutine and the
// renderers. It holds:
//
//   - the latest slider.Snapshot (active slide, transition, autoplay status)
//   - a bounded history of transition and autoplay notifications
//   - the outcome of the most recent deck load
//
// # Concurrency Model
//
// The Store uses a readers-writer lock. UpdateSlider, Record and UpdateDeck
// take the write lock; Snapshot takes the read lock and returns copies, so
// callers may keep and mutate what they receive.
//
// # Update Semantics
//
//	// Success: replace deck info, clear the error
//	store.UpdateDeck(path, title, nil)
//
//	// Error: keep the previous deck, record the error
//	store.UpdateDeck("", "", err)
//	→ snapshot.ConsecutiveFailures++
//
// After two failed reloads in a row Snapshot.IsStale reports true and the UI
// flags the deck as out of date.
//
// The zero value is ready to use and keeps DefaultHistory events.
package state
