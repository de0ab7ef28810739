package domain

// Checklist tracks the deployment-readiness proof flags. Flags only move
// false to true; the whole struct is reset only by a full restart.
type Checklist struct {
	ProfitableTrade      bool
	TriangularArbitrage  bool
	CalculatesNetProfit  bool
	RevertsUnprofitable  bool
	HandlesFrontRunning  bool
	HandlesPriceSlippage bool
	KillSwitch           bool
	SendsAlerts          bool
}
