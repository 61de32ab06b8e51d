package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styling for command output. Lipgloss degrades to plain text when
// stdout is not a terminal, so these are safe under redirection.
var (
	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BC34A")).
			Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2196F3"))

	styleValue = lipgloss.NewStyle().Bold(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	styleWarn = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFC107")).
			Bold(true)
)

// summaryLine renders one "label: value" row of the build summary.
func summaryLine(label, value string) string {
	return styleLabel.Render(label+":") + " " + styleValue.Render(value)
}

// renderTable lays out rows under a header with per-column widths.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(styleTitle.Width(widths[i] + 2).Render(h))
	}
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w + 2
	}
	sb.WriteString(styleMuted.Render(strings.Repeat("-", total)) + "\n")

	plain := lipgloss.NewStyle()
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(plain.Width(widths[i] + 2).Render(cell))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
