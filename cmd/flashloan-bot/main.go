// Package main is the entry point for the flash-loan arbitrage simulator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/defisim/flashloan-bot/business/arbitrage"
	"github.com/defisim/flashloan-bot/business/engine"
	engineApp "github.com/defisim/flashloan-bot/business/engine/app"
	engineDI "github.com/defisim/flashloan-bot/business/engine/di"
	engineInfra "github.com/defisim/flashloan-bot/business/engine/infra"
	"github.com/defisim/flashloan-bot/business/market"
	"github.com/defisim/flashloan-bot/internal/apm"
	"github.com/defisim/flashloan-bot/internal/config"
	"github.com/defisim/flashloan-bot/internal/health"
	"github.com/defisim/flashloan-bot/internal/logger"
	"github.com/defisim/flashloan-bot/internal/metrics"
	"github.com/defisim/flashloan-bot/internal/monolith"
	"github.com/defisim/flashloan-bot/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	cliMode := flag.Bool("cli", false, "Run in CLI mode with logs (no TUI)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("flashloan-bot %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// TUI is the default, CLI is for debugging
	tuiMode := !*cliMode

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !tuiMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	if err := run(ctx, *configPath, tuiMode); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, tuiMode bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Set TUI mode in config so modules know
	cfg.Simulator.TUIMode = tuiMode

	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}

	var log *logger.Logger
	if tuiMode {
		// In TUI mode, suppress logs so they don't fight the dashboard
		log = logger.New(io.Discard, logLevel, cfg.App.Name, nil)
	} else {
		log = logger.New(os.Stderr, logLevel, cfg.App.Name, nil)
		log.Info(ctx, "starting flash-loan arbitrage simulator",
			"version", version,
			"environment", cfg.App.Environment,
		)
	}

	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ZipkinProvider, log))
		log.Info(ctx, "tracing initialized", "provider", "zipkin", "endpoint", cfg.Telemetry.OTLPEndpoint)

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{
				Provider: metrics.PrometheusProvider,
			}),
		)

		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	// Define modules in dependency order
	modules := []monolith.Module{
		&market.Module{},    // Must be first - owns the pool state
		&arbitrage.Module{}, // Depends on market for pools
		&engine.Module{},    // Depends on market and arbitrage
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	eng := engineDI.GetEngine(mono.Services())

	healthServer := health.NewServer(8081, version, func() any { return eng.Snapshot() })
	healthServer.RegisterCheck("engine", func(ctx context.Context) (bool, string) {
		return true, eng.Snapshot().Status.String()
	})
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", 8081)
	}
	defer healthServer.Stop(ctx)

	if tuiMode {
		return runTUI(ctx, eng)
	}
	return runCLI(ctx, eng, log)
}

func runCLI(ctx context.Context, eng *engineApp.Engine, log *logger.Logger) error {
	eng.SetReporter(engineInfra.NewConsoleReporter(log, 10))

	// No operator keys in CLI mode, so go live immediately
	if err := eng.StartLive(ctx); err != nil {
		return fmt.Errorf("failed to start simulation: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- eng.Run(ctx)
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down")
	if err := eng.StopLive(context.Background()); err != nil {
		log.Error(ctx, "error stopping simulation", "error", err)
	}
	return <-errCh
}

func runTUI(ctx context.Context, eng *engineApp.Engine) error {
	eng.SetReporter(engineInfra.NewTUIReporter())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- eng.Run(runCtx)
	}()

	// Run TUI (blocking); the engine idles in Stopped until the operator
	// presses start
	if err := ui.Run(eng); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	cancel()
	<-errCh
	return nil
}
