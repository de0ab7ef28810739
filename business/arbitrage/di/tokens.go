// Package di contains dependency injection tokens for the arbitrage context.
package di

import (
	"github.com/defisim/flashloan-bot/business/arbitrage/app"
	"github.com/defisim/flashloan-bot/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Scanner = di.NewToken[*app.Scanner]("arbitrage.Scanner")
)

// Helper functions for type-safe access
func GetScanner(c di.ServiceRegistry) *app.Scanner {
	return di.GetToken(c, Scanner)
}
