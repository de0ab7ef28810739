package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ConsoleLine is one narration line for the console panel.
type ConsoleLine struct {
	Time     string
	Message  string
	Severity string // info, success, warning, error
}

// ConsoleComponent renders the scrolling event console.
type ConsoleComponent struct {
	lines   []ConsoleLine
	maxRows int
}

// NewConsoleComponent creates a console showing the last maxRows lines.
func NewConsoleComponent(maxRows int) *ConsoleComponent {
	return &ConsoleComponent{maxRows: maxRows}
}

// Append adds a line, discarding the oldest beyond capacity.
func (c *ConsoleComponent) Append(line ConsoleLine) {
	c.lines = append(c.lines, line)
	if len(c.lines) > c.maxRows {
		c.lines = c.lines[len(c.lines)-c.maxRows:]
	}
}

// Clear discards all lines.
func (c *ConsoleComponent) Clear() {
	c.lines = nil
}

// View renders the console panel.
func (c *ConsoleComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	styles := map[string]lipgloss.Style{
		"info":    lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		"success": lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	}
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	result := headerStyle.Render("CONSOLE") + "\n"
	if len(c.lines) == 0 {
		return result + "\nWaiting for events..."
	}

	for _, line := range c.lines {
		style, ok := styles[line.Severity]
		if !ok {
			style = styles["info"]
		}
		result += fmt.Sprintf("%s %s\n",
			timeStyle.Render(line.Time),
			style.Render(line.Message),
		)
	}
	return result
}
