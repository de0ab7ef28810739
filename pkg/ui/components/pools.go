package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// PoolRow is one liquidity pool for display.
type PoolRow struct {
	Venue        string
	Pair         string
	Price        decimal.Decimal
	ReserveA     decimal.Decimal
	ReserveB     decimal.Decimal
	PriceHistory []decimal.Decimal
}

// PoolsComponent renders the liquidity pool table with price sparklines.
type PoolsComponent struct {
	rows []PoolRow
}

// NewPoolsComponent creates a new pools component.
func NewPoolsComponent() *PoolsComponent {
	return &PoolsComponent{}
}

// Update replaces the displayed pool rows.
func (p *PoolsComponent) Update(rows []PoolRow) {
	p.rows = rows
}

// View renders the pool table.
func (p *PoolsComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	sparkStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA"))

	if len(p.rows) == 0 {
		return headerStyle.Render("LIQUIDITY POOLS") + "\n\nNo pools loaded..."
	}

	result := headerStyle.Render("LIQUIDITY POOLS") + "\n"
	result += fmt.Sprintf("%-12s %-11s %12s  %-20s\n", "Venue", "Pair", "Price", "Trend")
	for _, row := range p.rows {
		result += fmt.Sprintf("%-12s %-11s %12s  %s\n",
			row.Venue,
			row.Pair,
			formatPrice(row.Price),
			sparkStyle.Render(sparkline(row.PriceHistory, 20)),
		)
	}
	return result
}

// formatPrice keeps stable pairs readable without drowning WETH pairs in
// decimals.
func formatPrice(price decimal.Decimal) string {
	if price.GreaterThan(decimal.NewFromInt(10)) {
		return price.StringFixed(2)
	}
	return price.StringFixed(6)
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders the last n observations as a mini chart.
func sparkline(history []decimal.Decimal, n int) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > n {
		history = history[len(history)-n:]
	}

	min, max := history[0], history[0]
	for _, v := range history[1:] {
		if v.LessThan(min) {
			min = v
		}
		if v.GreaterThan(max) {
			max = v
		}
	}

	span := max.Sub(min)
	out := make([]rune, len(history))
	for i, v := range history {
		idx := 0
		if span.IsPositive() {
			ratio, _ := v.Sub(min).Div(span).Float64()
			idx = int(ratio * float64(len(sparkRunes)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(sparkRunes) {
				idx = len(sparkRunes) - 1
			}
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}
