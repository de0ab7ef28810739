package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Simulator-specific error codes
const (
	// Lifecycle / operator misuse (idempotent no-op conditions)
	CodeSimulationAlreadyRunning Code = "SIMULATION_ALREADY_RUNNING"
	CodeSimulationNotRunning     Code = "SIMULATION_NOT_RUNNING"
	CodeBacktestInProgress       Code = "BACKTEST_IN_PROGRESS"

	// Gas tank
	CodeGasTankDepleted    Code = "GAS_TANK_DEPLETED"
	CodeFaucetWhileLive    Code = "FAUCET_WHILE_LIVE"
	CodeFaucetRateLimited  Code = "FAUCET_RATE_LIMITED"

	// Market / scanning
	CodeInsufficientPools Code = "INSUFFICIENT_POOLS"
	CodeInvalidReserves   Code = "INVALID_RESERVES"
	CodeInvalidTradeSize  Code = "INVALID_TRADE_SIZE"
)
