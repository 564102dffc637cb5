// Package logtail reads the tail of carousel's log file for the log pane.
//
// # Reading Log Files
//
// Read uses a ring buffer of size maxLines, so memory stays O(maxLines)
// regardless of file size and the file is scanned once. Lines come back in
// chronological order.
//
//	lines, err := logtail.Read(cfg.Log.File, 200)
//
// Read returns nil, nil for a missing file. Other errors are wrapped.
//
// # Level Detection
//
// Level understands both slog handlers the logging package can produce
// (level=INFO for text, "level":"INFO" for JSON). The UI uses it to colour
// lines; StripTime shortens text records for narrow panes.
package logtail
