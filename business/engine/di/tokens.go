// Package di contains dependency injection tokens for the engine context.
package di

import (
	"github.com/defisim/flashloan-bot/business/engine/app"
	"github.com/defisim/flashloan-bot/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Engine = di.NewToken[*app.Engine]("engine.Engine")
)

// Helper functions for type-safe access
func GetEngine(c di.ServiceRegistry) *app.Engine {
	return di.GetToken(c, Engine)
}
