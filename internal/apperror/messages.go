package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// System errors
	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	// Lifecycle / operator misuse
	CodeSimulationAlreadyRunning: "Simulation is already running",
	CodeSimulationNotRunning:     "Simulation is not running",
	CodeBacktestInProgress:       "A backtest is already in progress",

	// Gas tank
	CodeGasTankDepleted:   "Gas tank balance below minimum operating threshold",
	CodeFaucetWhileLive:   "Faucet is unavailable while the simulation is live",
	CodeFaucetRateLimited: "Faucet rate limit exceeded",

	// Market / scanning
	CodeInsufficientPools: "Not enough pools to form the requested route",
	CodeInvalidReserves:   "Pool reserves must be positive",
	CodeInvalidTradeSize:  "Invalid trade size",
}

// MessageFor returns the canonical message for a code.
func MessageFor(code Code) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[CodeUnknownError]
}
