package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Adaptive colors for light/dark terminal backgrounds
	accentColor = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#8BE9FD"}
	greenColor  = lipgloss.AdaptiveColor{Light: "#116620", Dark: "#50FA7B"}
	yellowColor = lipgloss.AdaptiveColor{Light: "#7D5A00", Dark: "#F1FA8C"}
	redColor    = lipgloss.AdaptiveColor{Light: "#B31D28", Dark: "#FF5555"}
	dimColor    = lipgloss.AdaptiveColor{Light: "#777777", Dark: "#6272A4"}
	hlBgColor   = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#333333"}
	chipFgColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			PaddingLeft(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Background(hlBgColor).
				Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	chipStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	actionChipStyles = [numActions]lipgloss.Style{
		Attach: lipgloss.NewStyle().Foreground(chipFgColor).Background(accentColor).Bold(true),
		Rename: lipgloss.NewStyle().Foreground(chipFgColor).Background(yellowColor).Bold(true),
		Delete: lipgloss.NewStyle().Foreground(chipFgColor).Background(redColor).Bold(true),
	}

	editStyle = lipgloss.NewStyle().
			Foreground(yellowColor)

	createStyle = lipgloss.NewStyle().
			Foreground(greenColor)

	emptyStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(greenColor).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(redColor).
			Bold(true).
			PaddingLeft(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(yellowColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)

// NoSessionsText is shown instead of rows when tmux has no sessions.
const NoSessionsText = "No sessions"

// pad right-pads s to width with spaces (based on visual width, not byte count).
func pad(s string, width int) string {
	visual := lipgloss.Width(s)
	if visual >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visual)
}

// View renders the browser. It reads the model and never changes it.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("ursa · tmux sessions"))
	b.WriteString("\n\n")

	sessions := m.browser.Sessions()
	if len(sessions) == 0 && (m.edit == nil || m.edit.kind != editCreate) {
		b.WriteString(emptyStyle.Render(NoSessionsText + " - press n to create one"))
		b.WriteString("\n")
	}

	nameWidth := 0
	for _, s := range sessions {
		nameWidth = max(nameWidth, lipgloss.Width(s.Label))
	}

	maxVis := m.maxVisibleSessions()
	start := min(m.scrollOffset, max(0, len(sessions)-maxVis))
	end := min(start+maxVis, len(sessions))
	scrolling := maxVis < len(sessions)

	if scrolling {
		if start > 0 {
			b.WriteString(helpStyle.Render(fmt.Sprintf("    ↑ %d more", start)))
		}
		b.WriteString("\n")
	}

	for i := start; i < end; i++ {
		s := sessions[i]
		selected := i == m.browser.Cursor()

		if selected && m.edit != nil && m.edit.kind == editRename {
			b.WriteString(cursorStyle.Render(" >"))
			b.WriteString(" ")
			b.WriteString(editStyle.Render(m.input.View()))
			b.WriteString("\n")
			continue
		}

		row := " " + pad(s.Label, nameWidth)
		if m.showDetails {
			row += "  " + detailStyle.Render(s.Details())
		}

		if selected {
			b.WriteString(cursorStyle.Render(" >"))
			b.WriteString(selectedRowStyle.Render(row))
			b.WriteString("  ")
			b.WriteString(renderActions(m.browser.Action()))
		} else {
			b.WriteString("  ")
			b.WriteString(row)
		}
		b.WriteString("\n")
	}

	if scrolling {
		if end < len(sessions) {
			b.WriteString(helpStyle.Render(fmt.Sprintf("    ↓ %d more", len(sessions)-end)))
		}
		b.WriteString("\n")
	}

	if m.edit != nil && m.edit.kind == editCreate {
		b.WriteString(createStyle.Render("  + "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.statusIsErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(statusStyle.Render(m.status))
		}
	}
	b.WriteString("\n")

	b.WriteString(m.renderHelp())
	b.WriteString("\n")

	return b.String()
}

// renderActions draws all three chips with the selected one highlighted.
func renderActions(selected Action) string {
	chips := make([]string, 0, numActions)
	for a := Attach; a < numActions; a++ {
		label := "[" + a.String() + "]"
		if a == selected {
			chips = append(chips, actionChipStyles[a].Render(label))
		} else {
			chips = append(chips, chipStyle.Render(label))
		}
	}
	return strings.Join(chips, " ")
}

func (m Model) renderHelp() string {
	type hint struct{ key, desc string }
	var hints []hint

	switch {
	case m.edit != nil && m.edit.kind == editRename:
		hints = []hint{{"enter", "rename"}, {"esc", "cancel"}}
	case m.edit != nil:
		hints = []hint{{"enter", "create"}, {"esc", "cancel"}}
	case m.browser.Empty():
		hints = []hint{{"n", "new"}, {"r", "refresh"}, {"q/esc", "quit"}}
	default:
		hints = []hint{
			{"↑↓/jk", "navigate"},
			{"←→/hl", "action"},
			{"enter", "confirm"},
			{"n", "new"},
			{"r", "refresh"},
			{"q/esc", "quit"},
		}
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, helpKeyStyle.Render(h.key)+" "+helpStyle.Render(h.desc))
	}
	return " " + strings.Join(parts, "  ")
}
