package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// TradeRow is one trade record for display, newest first.
type TradeRow struct {
	Time      string
	ID        string
	Pair      string
	Venues    []string
	Status    string
	NetProfit decimal.Decimal
	Reason    string
}

// TradesComponent renders the trade history table.
type TradesComponent struct {
	rows    []TradeRow
	maxRows int
}

// NewTradesComponent creates a trades component showing at most maxRows.
func NewTradesComponent(maxRows int) *TradesComponent {
	return &TradesComponent{maxRows: maxRows}
}

// Update replaces the displayed trade rows.
func (t *TradesComponent) Update(rows []TradeRow) {
	if len(rows) > t.maxRows {
		rows = rows[:t.maxRows]
	}
	t.rows = rows
}

// View renders the trade table.
func (t *TradesComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	failedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	if len(t.rows) == 0 {
		return headerStyle.Render("TRADES") + "\n\nNo trades yet..."
	}

	result := headerStyle.Render("TRADES") + "\n"
	result += fmt.Sprintf("%-9s %-12s %-14s %-9s %10s\n", "Time", "Tx", "Pair", "Status", "Net")
	for _, row := range t.rows {
		var statusStyle lipgloss.Style
		var icon string
		switch row.Status {
		case "Success":
			statusStyle, icon = successStyle, "✓"
		case "Failed":
			statusStyle, icon = failedStyle, "✗"
		default:
			statusStyle, icon = pendingStyle, "◌"
		}

		net := row.NetProfit.StringFixed(2)
		netStyle := successStyle
		if row.NetProfit.IsNegative() {
			netStyle = failedStyle
		} else if row.NetProfit.IsZero() {
			netStyle = mutedStyle
		}

		result += fmt.Sprintf("%-9s %-12s %-14s %s %10s\n",
			row.Time,
			shorten(row.ID, 12),
			row.Pair,
			statusStyle.Render(fmt.Sprintf("%s %-7s", icon, row.Status)),
			netStyle.Render("$"+net),
		)
		if row.Reason != "" {
			result += mutedStyle.Render("          └ "+row.Reason) + "\n"
		} else if len(row.Venues) > 0 && row.Status == "Pending" {
			result += mutedStyle.Render("          └ "+strings.Join(row.Venues, " → ")) + "\n"
		}
	}
	return result
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
