package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatus renders the one-line transition summary.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	snap := m.store.Snapshot()
	st := snap.Slider.Transition

	parts := []string{
		styles.Text.Bold(true).Render(fmt.Sprintf("slide %d/%d", st.Active, snap.Slider.Total)),
	}
	if st.Previous > 0 {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("previous %d", st.Previous)))
	}
	if st.Transitioning {
		parts = append(parts, styles.AccentText.Render("sliding "+directionArrow(st.Direction)))
	} else {
		parts = append(parts, styles.FaintText.Render("settled"))
	}
	if snap.Slider.Autoplay.Enabled {
		parts = append(parts, styles.InfoText.Render("autoplay "+autoplayLabel(snap.Slider.Autoplay)))
	}
	if ev, ok := snap.LastEvent(); ok {
		parts = append(parts, styles.MutedText.Render("last: "+ev.String()))
	}

	line := strings.Join(parts, styles.FaintText.Render(" · "))
	return lipgloss.NewStyle().Padding(0, 1).Width(m.width).Render(line)
}
