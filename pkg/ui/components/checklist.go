package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ChecklistItem is one readiness proof flag for display.
type ChecklistItem struct {
	Label string
	Done  bool
}

// ChecklistComponent renders the deployment-readiness checklist.
type ChecklistComponent struct {
	items []ChecklistItem
}

// NewChecklistComponent creates a new checklist component.
func NewChecklistComponent() *ChecklistComponent {
	return &ChecklistComponent{}
}

// Update replaces the displayed items.
func (c *ChecklistComponent) Update(items []ChecklistItem) {
	c.items = items
}

// View renders the checklist panel.
func (c *ChecklistComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	result := headerStyle.Render("READINESS CHECKLIST") + "\n"
	for _, item := range c.items {
		if item.Done {
			result += doneStyle.Render(fmt.Sprintf("✓ %s", item.Label)) + "\n"
		} else {
			result += pendingStyle.Render(fmt.Sprintf("○ %s", item.Label)) + "\n"
		}
	}
	return result
}
