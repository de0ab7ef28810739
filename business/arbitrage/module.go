// Package arbitrage implements the arbitrage bounded context: route
// discovery and pricing over the simulated pools.
package arbitrage

import (
	"context"

	"github.com/defisim/flashloan-bot/business/arbitrage/app"
	arbDI "github.com/defisim/flashloan-bot/business/arbitrage/di"
	"github.com/defisim/flashloan-bot/internal/config"
	"github.com/defisim/flashloan-bot/internal/di"
	"github.com/defisim/flashloan-bot/internal/monolith"
)

// Module implements the arbitrage bounded context.
type Module struct{}

// RegisterServices registers all arbitrage services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, arbDI.Scanner, func(sr di.ServiceRegistry) *app.Scanner {
		cfg := sr.Get("config").(*config.Config)

		return app.NewScanner(app.ScannerConfig{
			SpatialLoanUSDC:    cfg.Simulator.SpatialLoanDecimal(),
			TriangularLoanWETH: cfg.Simulator.TriangularLoanDecimal(),
			LoanFeeRate:        cfg.Simulator.LoanFeeRateDecimal(),
			ETHPriceUSD:        cfg.Simulator.ETHPriceDecimal(),
		})
	})

	return nil
}

// Startup initializes the arbitrage module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "arbitrage module started")
	return nil
}
