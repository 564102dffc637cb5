// Package config loads carousel configuration files.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/carousel/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. If the file exists but keys are missing, keep the defaults for them
//
// # TOML Format
//
//	initial_slide = 1
//	sliding_duration_ms = 500
//	sliding_delay_ms = 200
//	safety_factor = 1.1
//	should_autoplay = false
//	autoplay_duration_ms = 5000
//	should_display_buttons = true
//	should_slide_on_arrow_keypress = true
//	deck = "talk.yaml"
//	watch_interval_ms = 2000
//
//	[log]
//	level = "info"    # debug, info, warn, error
//	format = "text"   # text or json
//	file = "~/.local/state/carousel/carousel.log"
//
// Tilde expansion is applied to every path. A relative deck path is resolved
// against the directory holding the config file.
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML syntax errors and values
// outside their valid range (for example safety_factor below 1). A missing
// config file is not an error.
package config
