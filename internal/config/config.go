// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Market    MarketConfig    `mapstructure:"market"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// SimulatorConfig holds the tick engine and transaction lifecycle tunables.
type SimulatorConfig struct {
	TickInterval        time.Duration `mapstructure:"tick_interval"`
	ResolveDelay        time.Duration `mapstructure:"resolve_delay"`
	SubmitThresholdUSD  float64       `mapstructure:"submit_threshold_usd"`
	MinGasUSD           float64       `mapstructure:"min_gas_usd"`
	FrontRunProbability float64       `mapstructure:"front_run_probability"`
	SpatialLoanUSDC     float64       `mapstructure:"spatial_loan_usdc"`
	TriangularLoanWETH  float64       `mapstructure:"triangular_loan_weth"`
	LoanFeeRate         float64       `mapstructure:"loan_fee_rate"`
	ETHPriceUSD         float64       `mapstructure:"eth_price_usd"`
	InitialGasETH       float64       `mapstructure:"initial_gas_eth"`
	FaucetAmountETH     float64       `mapstructure:"faucet_amount_eth"`
	FaucetPerMinute     int           `mapstructure:"faucet_per_minute"`
	InitialBlock        uint64        `mapstructure:"initial_block"`
	Seed                int64         `mapstructure:"seed"`
	TUIMode             bool          `mapstructure:"-"` // Set at runtime, not from config file
}

// MarketConfig holds the per-tick market mutation tunables.
type MarketConfig struct {
	DriftRate       float64 `mapstructure:"drift_rate"`
	MaxVolumeRate   float64 `mapstructure:"max_volume_rate"`
	CongestionStep  float64 `mapstructure:"congestion_step"`
	PriceHistoryLen int     `mapstructure:"price_history_len"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// SubmitThresholdDecimal returns the submission profit threshold as a decimal.
func (c *SimulatorConfig) SubmitThresholdDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.SubmitThresholdUSD)
}

// MinGasDecimal returns the minimum operating gas value as a decimal.
func (c *SimulatorConfig) MinGasDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MinGasUSD)
}

// ETHPriceDecimal returns the reference ETH price as a decimal.
func (c *SimulatorConfig) ETHPriceDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.ETHPriceUSD)
}

// SpatialLoanDecimal returns the spatial route notional as a decimal.
func (c *SimulatorConfig) SpatialLoanDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.SpatialLoanUSDC)
}

// TriangularLoanDecimal returns the triangular route notional as a decimal.
func (c *SimulatorConfig) TriangularLoanDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.TriangularLoanWETH)
}

// LoanFeeRateDecimal returns the flash-loan provider fee rate as a decimal.
func (c *SimulatorConfig) LoanFeeRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.LoanFeeRate)
}

// InitialGasDecimal returns the starting gas tank balance as a decimal.
func (c *SimulatorConfig) InitialGasDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.InitialGasETH)
}

// FaucetAmountDecimal returns the faucet credit amount as a decimal.
func (c *SimulatorConfig) FaucetAmountDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.FaucetAmountETH)
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("SIM")
	v.AutomaticEnv()

	// Bind env vars to config keys
	bindEnvVars(v)

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "SIM_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "SIM_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "SIM_LOG_LEVEL", "LOG_LEVEL")

	// Simulator
	v.BindEnv("simulator.tick_interval", "SIM_TICK_INTERVAL")
	v.BindEnv("simulator.resolve_delay", "SIM_RESOLVE_DELAY")
	v.BindEnv("simulator.submit_threshold_usd", "SIM_SUBMIT_THRESHOLD_USD")
	v.BindEnv("simulator.min_gas_usd", "SIM_MIN_GAS_USD")
	v.BindEnv("simulator.front_run_probability", "SIM_FRONT_RUN_PROBABILITY")
	v.BindEnv("simulator.eth_price_usd", "SIM_ETH_PRICE_USD")
	v.BindEnv("simulator.seed", "SIM_SEED")

	// Telemetry
	v.BindEnv("telemetry.enabled", "SIM_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "SIM_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "SIM_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "flashloan-bot")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Simulator defaults
	v.SetDefault("simulator.tick_interval", "1500ms")
	v.SetDefault("simulator.resolve_delay", "3s")
	v.SetDefault("simulator.submit_threshold_usd", 50.0)
	v.SetDefault("simulator.min_gas_usd", 100.0)
	v.SetDefault("simulator.front_run_probability", 0.1)
	v.SetDefault("simulator.spatial_loan_usdc", 1_000_000.0)
	v.SetDefault("simulator.triangular_loan_weth", 400.0)
	v.SetDefault("simulator.loan_fee_rate", 0.0009) // Aave V3 flash-loan premium
	v.SetDefault("simulator.eth_price_usd", 2500.0)
	v.SetDefault("simulator.initial_gas_eth", 0.5)
	v.SetDefault("simulator.faucet_amount_eth", 0.5)
	v.SetDefault("simulator.faucet_per_minute", 6)
	v.SetDefault("simulator.initial_block", 19_845_321)
	v.SetDefault("simulator.seed", 0) // 0 = time-based seed

	// Market defaults
	v.SetDefault("market.drift_rate", 0.001)     // +/-0.05% per tick
	v.SetDefault("market.max_volume_rate", 0.01) // up to 1% of reserveA
	v.SetDefault("market.congestion_step", 0.2)  // +/-0.1 per tick
	v.SetDefault("market.price_history_len", 20)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "flashloan-bot")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Simulator.TickInterval <= 0 {
		return fmt.Errorf("simulator.tick_interval must be positive")
	}
	if c.Simulator.ResolveDelay <= 0 {
		return fmt.Errorf("simulator.resolve_delay must be positive")
	}
	if c.Simulator.FrontRunProbability < 0 || c.Simulator.FrontRunProbability > 1 {
		return fmt.Errorf("simulator.front_run_probability must be in [0, 1]")
	}
	if c.Simulator.ETHPriceUSD <= 0 {
		return fmt.Errorf("simulator.eth_price_usd must be positive")
	}
	if c.Simulator.SpatialLoanUSDC <= 0 || c.Simulator.TriangularLoanWETH <= 0 {
		return fmt.Errorf("simulator loan notionals must be positive")
	}
	if c.Market.DriftRate < 0 || c.Market.MaxVolumeRate < 0 || c.Market.MaxVolumeRate >= 1 {
		return fmt.Errorf("market mutation rates out of range")
	}
	if c.Market.PriceHistoryLen < 2 {
		return fmt.Errorf("market.price_history_len must be at least 2")
	}
	return nil
}
