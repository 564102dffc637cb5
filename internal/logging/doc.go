// Package logging builds the structured slog logger used across carousel.
//
// The TUI owns the terminal, so interactive runs log to a file (see Open);
// headless runs log to stderr through New. Level and format come from the
// [log] table of the config file. Every record carries service=carousel, and
// each slider mount adds an instance UUID via ForMount.
package logging
