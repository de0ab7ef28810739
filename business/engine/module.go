// Package engine implements the engine bounded context: the tick loop, the
// transaction lifecycle and the ledger.
package engine

import (
	"context"
	"math/rand"

	arbDI "github.com/defisim/flashloan-bot/business/arbitrage/di"
	"github.com/defisim/flashloan-bot/business/engine/app"
	engineDI "github.com/defisim/flashloan-bot/business/engine/di"
	marketDI "github.com/defisim/flashloan-bot/business/market/di"
	"github.com/defisim/flashloan-bot/internal/config"
	"github.com/defisim/flashloan-bot/internal/di"
	"github.com/defisim/flashloan-bot/internal/logger"
	"github.com/defisim/flashloan-bot/internal/monolith"
)

// Module implements the engine bounded context.
type Module struct{}

// RegisterServices registers all engine services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, engineDI.Engine, func(sr di.ServiceRegistry) *app.Engine {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		rng := sr.Get("rng").(*rand.Rand)

		e, err := app.New(
			cfg.Simulator,
			marketDI.GetStore(sr),
			marketDI.GetMutator(sr),
			arbDI.GetScanner(sr),
			rng,
			log,
		)
		if err != nil {
			panic(err)
		}
		return e
	})

	return nil
}

// Startup initializes the engine module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	engineDI.GetEngine(mono.Services())
	mono.Logger().Info(ctx, "engine module started",
		"tick_interval", mono.Config().Simulator.TickInterval,
		"resolve_delay", mono.Config().Simulator.ResolveDelay,
	)
	return nil
}
