package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/carousel/internal/slider"
)

const (
	navWidth       = 30
	minPanelHeight = 7
)

// chromeHeight is the number of lines around the body: header, status, help
// and the optional buttons row and log pane.
func (m Model) chromeHeight() int {
	h := 3
	if m.settings.ShouldDisplayButtons {
		h++
	}
	if m.showLogs {
		h += logPaneLines + 1
	}
	return h
}

// renderBody renders the side nav next to the slide panel.
func (m Model) renderBody() string {
	height := m.height - m.chromeHeight()
	if height < minPanelHeight {
		height = minPanelHeight
	}
	nav := m.renderNav(height)
	panelWidth := m.width - lipgloss.Width(nav)
	if panelWidth < 20 {
		panelWidth = 20
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, nav, m.renderPanel(panelWidth, height))
}

// renderNav renders the numbered slide list. The active entry is highlighted
// and, while a transition runs, the slide being left is marked.
func (m Model) renderNav(height int) string {
	styles := m.theme.Styles()
	st := m.engine.slider.Controller().State()

	var lines []string
	for i, s := range m.engine.deck.Slides {
		number := i + 1
		label := fmt.Sprintf(" %d  %s", number, truncate(s.NavLabel(), navWidth-6))
		style := styles.MutedText
		switch {
		case number == st.Active:
			style = styles.Selected
		case st.Transitioning && number == st.Previous:
			style = styles.FaintText.Italic(true)
		}
		lines = append(lines, style.Width(navWidth-2).Render(label))
	}

	return lipgloss.NewStyle().
		Width(navWidth).
		Height(height).
		Padding(0, 1).
		Background(lipgloss.Color(m.theme.Surface)).
		Render(strings.Join(lines, "\n"))
}

// renderPanel renders the active slide.
func (m Model) renderPanel(width, height int) string {
	styles := m.theme.Styles()
	st := m.engine.slider.Controller().State()

	background := m.theme.SurfaceAlt
	border := m.theme.Border
	if st.Transitioning {
		border = m.theme.BorderFocus
	}

	var content []string
	if s, ok := m.engine.activeSlide(); ok {
		if s.Background != "" {
			background = s.Background
		}
		content = append(content, styles.Text.Bold(true).Render(s.Title))
		if s.Subtitle != "" {
			content = append(content, styles.Text.Italic(true).Render(s.Subtitle))
		}
		if s.Body != "" {
			content = append(content, "", styles.Text.Render(s.Body))
		}
	} else {
		content = append(content, styles.MutedText.Render("No slides"))
	}
	if st.Transitioning {
		content = append([]string{styles.AccentText.Bold(true).Render(directionArrow(st.Direction)), ""}, content...)
	}

	bg := lipgloss.Color(background)
	inner := lipgloss.Place(
		width-2,
		height-2,
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, content...),
		lipgloss.WithWhitespaceBackground(bg),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Background(bg).
		Render(inner)
}

// renderButtons renders the previous, autoplay and next controls.
func (m Model) renderButtons() string {
	styles := m.theme.Styles()
	parts := []string{styles.Button.Render("‹ prev")}
	if status := m.engine.slider.Autoplay().Status(); status.Enabled {
		parts = append(parts, styles.Button.Foreground(lipgloss.Color(m.theme.Accent)).Render(autoplayGlyph(status)))
	}
	parts = append(parts, styles.Button.Render("next ›"))
	row := strings.Join(parts, " ")
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, row)
}

// autoplayGlyph derives the play/pause button face from the autoplay status.
func autoplayGlyph(s slider.AutoplayStatus) string {
	if s.ShowsPlay() {
		return "▶"
	}
	return "⏸"
}

func autoplayLabel(s slider.AutoplayStatus) string {
	switch {
	case !s.Enabled:
		return "off"
	case s.PausedByUser:
		return "paused"
	case s.State == slider.TimerRunning:
		return "playing"
	default:
		return s.State.String()
	}
}

func directionArrow(d slider.Direction) string {
	switch d {
	case slider.DirectionForward:
		return "→"
	case slider.DirectionBackward:
		return "←"
	default:
		return ""
	}
}
