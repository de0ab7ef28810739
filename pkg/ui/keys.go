package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Start      key.Binding
	Stop       key.Binding
	Backtest   key.Binding
	KillSwitch key.Binding
	Faucet     key.Binding
	Tab        key.Binding
	Quit       key.Binding
	Help       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start live"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		Backtest: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "backtest"),
		),
		KillSwitch: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "kill switch"),
		),
		Faucet: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "faucet"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp returns keybindings for the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.KillSwitch, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.Backtest},
		{k.KillSwitch, k.Faucet, k.Tab, k.Quit},
	}
}
