// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Stats holds the headline figures shown at the top of the dashboard.
type Stats struct {
	Status       string
	Block        uint64
	TotalProfit  decimal.Decimal
	GasTankETH   decimal.Decimal
	Congestion   float64
	WinRate      float64
	SuccessCount int
	FailureCount int
	PendingID    string
}

// StatsComponent renders the headline stat cards.
type StatsComponent struct {
	stats Stats
}

// NewStatsComponent creates a new stats component.
func NewStatsComponent() *StatsComponent {
	return &StatsComponent{}
}

// Update replaces the displayed figures.
func (s *StatsComponent) Update(stats Stats) {
	s.stats = stats
}

// View renders the stat cards in one row.
func (s *StatsComponent) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true)
	profitStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	lossStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#374151")).
		Padding(0, 2)

	profit := profitStyle
	if s.stats.TotalProfit.IsNegative() {
		profit = lossStyle
	}

	cards := []string{
		cardStyle.Render(labelStyle.Render("Total Profit") + "\n" +
			profit.Render("$"+s.stats.TotalProfit.StringFixed(2))),
		cardStyle.Render(labelStyle.Render("Win Rate") + "\n" +
			valueStyle.Render(fmt.Sprintf("%.0f%% (%d/%d)",
				s.stats.WinRate*100, s.stats.SuccessCount,
				s.stats.SuccessCount+s.stats.FailureCount))),
		cardStyle.Render(labelStyle.Render("Gas Tank") + "\n" +
			valueStyle.Render(s.stats.GasTankETH.StringFixed(4)+" ETH")),
		cardStyle.Render(labelStyle.Render("Block") + "\n" +
			valueStyle.Render(fmt.Sprintf("#%d", s.stats.Block))),
		cardStyle.Render(labelStyle.Render("Congestion") + "\n" +
			valueStyle.Render(fmt.Sprintf("%.0f%% %s",
				s.stats.Congestion*100, congestionBar(s.stats.Congestion)))),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// congestionBar renders a five-cell gauge.
func congestionBar(level float64) string {
	filled := int(level*5 + 0.5)
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 5-filled)
}
