package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/carousel/internal/logtail"
)

// renderLogs renders the tail of the log file.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	lines := make([]string, 0, logPaneLines)
	if len(m.logLines) == 0 {
		lines = append(lines, styles.FaintText.Render("no log output yet"))
	}
	for _, line := range m.logLines {
		line = truncate(logtail.StripTime(line), m.width-4)
		lines = append(lines, styles.LevelStyle(logtail.Level(line)).Render(line))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(m.width).
		Height(logPaneLines).
		Render(strings.Join(lines, "\n"))
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg(nil)
		}
		lines, err := logtail.Read(path, logPaneLines)
		if err != nil {
			return logLinesMsg([]string{"log unavailable: " + err.Error()})
		}
		return logLinesMsg(lines)
	}
}
