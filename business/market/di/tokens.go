// Package di contains dependency injection tokens for the market context.
package di

import (
	"github.com/defisim/flashloan-bot/business/market/app"
	"github.com/defisim/flashloan-bot/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Store   = di.NewToken[*app.Store]("market.Store")
	Mutator = di.NewToken[*app.Mutator]("market.Mutator")
)

// Helper functions for type-safe access
func GetStore(c di.ServiceRegistry) *app.Store {
	return di.GetToken(c, Store)
}

func GetMutator(c di.ServiceRegistry) *app.Mutator {
	return di.GetToken(c, Mutator)
}
