// Package market implements the market bounded context: the simulated pool
// set and its per-tick mutation.
package market

import (
	"context"
	"math/rand"

	"github.com/defisim/flashloan-bot/business/market/app"
	marketDI "github.com/defisim/flashloan-bot/business/market/di"
	"github.com/defisim/flashloan-bot/internal/config"
	"github.com/defisim/flashloan-bot/internal/di"
	"github.com/defisim/flashloan-bot/internal/monolith"
)

// Module implements the market bounded context.
type Module struct{}

// RegisterServices registers all market services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, marketDI.Store, func(sr di.ServiceRegistry) *app.Store {
		cfg := sr.Get("config").(*config.Config)
		return app.NewStore(cfg.Market.PriceHistoryLen)
	})

	di.RegisterToken(c, marketDI.Mutator, func(sr di.ServiceRegistry) *app.Mutator {
		cfg := sr.Get("config").(*config.Config)
		rng := sr.Get("rng").(*rand.Rand)

		return app.NewMutator(marketDI.GetStore(sr), rng, app.MutatorConfig{
			DriftRate:      cfg.Market.DriftRate,
			MaxVolumeRate:  cfg.Market.MaxVolumeRate,
			CongestionStep: cfg.Market.CongestionStep,
		})
	})

	return nil
}

// Startup initializes the market module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	store := marketDI.GetStore(mono.Services())
	mono.Logger().Info(ctx, "market module started", "pools", len(store.Snapshot()))
	return nil
}
