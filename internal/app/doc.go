// Package app provides the orchestration layer for carousel.
//
// # Overview
//
// This package wires together configuration, logging, the deck file, state
// and a host for the slider engine. It is the composition root where all
// dependencies are initialized and connected. Two hosts exist:
//
//   - Run: the Bubble Tea TUI (internal/ui)
//   - RunHeadless: the engine on a slider.Loop, logging every notification
//
// # Components
//
//   - app.go: Run, config overrides and deck loading
//   - headless.go: RunHeadless and its line-oriented command reader
//   - watcher.go: background goroutine that reloads the deck file on change
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read carousel config + flag overrides
//	       ├─────> logging.Open()     Log file (the TUI owns the terminal)
//	       ├─────> prefs.Load()       Theme and autoplay pause
//	       ├─────> deck.Load()        Deck file, or the built-in deck
//	       ├─────> Watcher.Start()    Deck reloads on a channel
//	       └─────> ui.Run()           Start TUI (blocks)
//
// # Deck Reloads
//
// The watcher polls the deck file's modification time and size (default
// every 2 seconds). A changed file is parsed and sent to the host, which
// closes the mounted slider and mounts a new one. Read or parse failures are
// recorded in state.Store and retried with exponential backoff capped at 30
// seconds; the previous deck stays mounted.
//
// # Headless Commands
//
// RunHeadless reads commands from an optional io.Reader, one per line:
//
//	next | prev | goto N | pause | resume | toggle
//
// next and prev go through the bridge's action slots, which are dispatched
// onto the loop; the rest use Loop.Call and wait for the result.
package app
