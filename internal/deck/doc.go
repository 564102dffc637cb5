// Package deck loads slide decks from TOML or YAML files.
//
// The format is picked from the file extension (.toml, .yaml, .yml). Both
// encodings share one schema:
//
//	title = "Travel"
//
//	[[slides]]
//	title = "Giau Pass"
//	subtitle = "Dolomites"
//	body = "..."
//	nav_description = "Giau Pass - Italy"
//	background = "#2E4057"   # hex or ANSI 256 colour
//
// A deck must contain at least one slide. Slides are numbered 1..N in file
// order when handed to the slider engine.
package deck
