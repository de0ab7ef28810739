package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/defisim/flashloan-bot/business/engine/domain"
	"github.com/defisim/flashloan-bot/pkg/ui/components"
)

// Controller is the operator command surface the dashboard drives. The
// engine implements it; the UI never touches engine state directly.
type Controller interface {
	StartLive(ctx context.Context) error
	StopLive(ctx context.Context) error
	KillSwitch(ctx context.Context) error
	RunBacktest(ctx context.Context) error
	RequestFaucet(ctx context.Context) error
	Snapshot() domain.Snapshot
}

// Model is the main Bubble Tea model for the dashboard.
type Model struct {
	controller Controller
	keys       KeyMap

	stats     *components.StatsComponent
	pools     *components.PoolsComponent
	trades    *components.TradesComponent
	console   *components.ConsoleComponent
	checklist *components.ChecklistComponent

	snapshot domain.Snapshot
	errorMsg string
	errorAt  time.Time

	ready    bool
	quitting bool
	showHelp bool
	width    int
	height   int
}

// New creates a new dashboard model driving the given controller.
func New(controller Controller) Model {
	m := Model{
		controller: controller,
		keys:       DefaultKeyMap(),
		stats:      components.NewStatsComponent(),
		pools:      components.NewPoolsComponent(),
		trades:     components.NewTradesComponent(12),
		console:    components.NewConsoleComponent(10),
		checklist:  components.NewChecklistComponent(),
	}
	m.applySnapshot(controller.Snapshot())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd redraws on a fixed cadence so timers and gauges stay live even
// between engine updates.
func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		if m.errorMsg != "" && time.Since(m.errorAt) > 5*time.Second {
			m.errorMsg = ""
		}
		return m, tickCmd()

	case SnapshotMsg:
		m.applySnapshot(msg.Snapshot)

	case EventMsg:
		m.console.Append(components.ConsoleLine{
			Time:     msg.Event.Timestamp.Format("15:04:05"),
			Message:  msg.Event.Message,
			Severity: string(msg.Event.Severity),
		})

	case ErrorMsg:
		m.errorMsg = msg.Error.Error()
		m.errorAt = time.Now()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Start):
		return m.command(m.controller.StartLive(ctx))
	case key.Matches(msg, m.keys.Stop):
		return m.command(m.controller.StopLive(ctx))
	case key.Matches(msg, m.keys.Backtest):
		return m.command(m.controller.RunBacktest(ctx))
	case key.Matches(msg, m.keys.KillSwitch):
		return m.command(m.controller.KillSwitch(ctx))
	case key.Matches(msg, m.keys.Faucet):
		return m.command(m.controller.RequestFaucet(ctx))
	}
	return m, nil
}

// command surfaces a rejected operator command in the error line.
func (m Model) command(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.errorMsg = err.Error()
		m.errorAt = time.Now()
	}
	return m, nil
}

func (m *Model) applySnapshot(s domain.Snapshot) {
	m.snapshot = s

	m.stats.Update(components.Stats{
		Status:       s.Status.String(),
		Block:        s.Block,
		TotalProfit:  s.TotalProfit,
		GasTankETH:   s.GasTankETH,
		Congestion:   s.Congestion,
		WinRate:      s.WinRate,
		SuccessCount: s.SuccessCount,
		FailureCount: s.FailureCount,
		PendingID:    s.PendingID,
	})

	poolRows := make([]components.PoolRow, 0, len(s.Pools))
	for _, p := range s.Pools {
		poolRows = append(poolRows, components.PoolRow{
			Venue:        p.Venue,
			Pair:         p.Pair,
			Price:        p.Price,
			ReserveA:     p.ReserveA,
			ReserveB:     p.ReserveB,
			PriceHistory: p.PriceHistory,
		})
	}
	m.pools.Update(poolRows)

	tradeRows := make([]components.TradeRow, 0, len(s.Trades))
	for _, t := range s.Trades {
		tradeRows = append(tradeRows, components.TradeRow{
			Time:      t.Timestamp.Format("15:04:05"),
			ID:        t.ID,
			Pair:      t.Pair,
			Venues:    t.Venues,
			Status:    string(t.Status),
			NetProfit: t.NetProfit,
			Reason:    t.FailureReason,
		})
	}
	m.trades.Update(tradeRows)

	m.checklist.Update([]components.ChecklistItem{
		{Label: "Executes profitable trades", Done: s.Checklist.ProfitableTrade},
		{Label: "Performs triangular arbitrage", Done: s.Checklist.TriangularArbitrage},
		{Label: "Calculates net profit", Done: s.Checklist.CalculatesNetProfit},
		{Label: "Reverts unprofitable trades", Done: s.Checklist.RevertsUnprofitable},
		{Label: "Handles front-running", Done: s.Checklist.HandlesFrontRunning},
		{Label: "Handles price slippage", Done: s.Checklist.HandlesPriceSlippage},
		{Label: "Kill switch engaged", Done: s.Checklist.KillSwitch},
		{Label: "Sends critical alerts", Done: s.Checklist.SendsAlerts},
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}
	if !m.ready {
		return "\n  Loading..."
	}

	var b strings.Builder

	title := TitleStyle.Render(" ⚡ Flash-Loan Arbitrage Simulator ")
	b.WriteString(title)
	b.WriteString("  ")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")

	b.WriteString(m.stats.View())
	b.WriteString("\n\n")

	leftCol := m.pools.View() + "\n" + m.checklist.View()
	rightCol := m.trades.View()

	if m.width > 110 {
		left := BoxStyle.Width(m.width/2 - 2).Render(leftCol)
		right := BoxStyle.Width(m.width/2 - 2).Render(rightCol)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		b.WriteString(BoxStyle.Width(m.width - 4).Render(leftCol))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Width(m.width - 4).Render(rightCol))
	}
	b.WriteString("\n")

	b.WriteString(BoxStyle.Width(m.width - 4).Render(m.console.View()))
	b.WriteString("\n")

	if m.errorMsg != "" {
		errStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
		b.WriteString(errStyle.Render("  ! " + m.errorMsg))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(HelpStyle.Render(m.renderFullHelp()))
	} else {
		b.WriteString(HelpStyle.Render("s: start • x: stop • b: backtest • K: kill switch • f: faucet • ?: help • q: quit"))
	}

	return b.String()
}

func (m Model) renderStatus() string {
	switch m.snapshot.Status {
	case domain.StatusLive:
		return StatusLive.Render("● LIVE")
	case domain.StatusBacktesting:
		return StatusBacktesting.Render("◌ BACKTESTING")
	default:
		return StatusStopped.Render("■ STOPPED")
	}
}

func (m Model) renderFullHelp() string {
	var rows []string
	for _, group := range m.keys.FullHelp() {
		var parts []string
		for _, binding := range group {
			parts = append(parts, fmt.Sprintf("%s: %s", binding.Help().Key, binding.Help().Desc))
		}
		rows = append(rows, strings.Join(parts, " • "))
	}
	return strings.Join(rows, "\n")
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// Run starts the Bubble Tea program and blocks until it exits.
func Run(controller Controller) error {
	Program = tea.NewProgram(New(controller), tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program. Safe to call before Run; the
// message is dropped.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
}
