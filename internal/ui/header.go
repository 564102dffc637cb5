package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the title bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := lipgloss.Color(m.theme.Surface)
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := []string{styles.Logo.Background(bg).Render("carousel")}

	if title := m.engine.deck.Title; title != "" {
		parts = append(parts, styles.Text.Background(bg).Bold(true).Render(title))
	}
	if sub := m.engine.deck.Subtitle; sub != "" {
		parts = append(parts, styles.MutedText.Background(bg).Render(truncate(sub, 48)))
	}

	snap := m.store.Snapshot()
	switch {
	case m.engine.mountErr != nil:
		parts = append(parts, styles.DangerText.Background(bg).Render("mount failed: "+truncate(m.engine.mountErr.Error(), 60)))
	case snap.IsStale():
		parts = append(parts, styles.WarningText.Background(bg).Bold(true).Render(
			fmt.Sprintf("deck reload failing (%d)", snap.ConsecutiveFailures)))
	}

	if path := m.engine.deckPath; path != "" {
		parts = append(parts, styles.FaintText.Background(bg).Render(filepath.Base(path)))
	}
	parts = append(parts, styles.FaintText.Background(bg).Render(m.theme.Name))

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// truncate shortens a string to the given limit, adding an ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
