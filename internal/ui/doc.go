// Package ui provides the Bubble Tea terminal host for the carousel engine.
//
// # Architecture Overview
//
// Model is a tea.Model. It owns a mounted slider.Slider for the current deck
// and renders:
//
//   - header: deck title, reload health, theme
//   - side nav: numbered slides, the active one highlighted
//   - slide panel: the active slide, with a direction arrow while sliding
//   - buttons row (when should_display_buttons): prev, play/pause, next
//   - status line: active/previous slide and the last notification
//   - optional log pane (L) tailing the log file
//
// # Event Flow
//
//  1. Run creates a slider.DispatchClock and attaches it to the program, so
//     every engine timer callback arrives as a timerMsg and runs inside Update
//  2. Init sends mountMsg; Update mounts the slider and binds the bridge
//  3. Arrow keys call the bridge's action slots; digits call GoToSlide
//  4. Deck reloads arrive as deckMsg; the slider is closed and a new one
//     mounted, which rebinds the same bridge
//  5. After each Update the slider snapshot is published to state.Store
//
// Because timer callbacks and key handling both run on the program
// goroutine, the engine needs no locking.
package ui
