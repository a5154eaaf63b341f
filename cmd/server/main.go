package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/miyamo2/qilin"
	"go.uber.org/zap"

	"github.com/meteomcp/weather-mcp-service/internal/config"
	"github.com/meteomcp/weather-mcp-service/internal/httpclient"
	"github.com/meteomcp/weather-mcp-service/internal/meteo"
	"github.com/meteomcp/weather-mcp-service/internal/observability"
	"github.com/meteomcp/weather-mcp-service/internal/ops"
	"github.com/meteomcp/weather-mcp-service/internal/service"
	"github.com/meteomcp/weather-mcp-service/internal/tool"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	clients := httpclient.NewManager(cfg.UpstreamTimeout, logger)
	clients.Start()

	meteoClient := meteo.NewClient(cfg.GeocodingAPIURL, cfg.ForecastAPIURL)
	weatherService := service.NewWeatherService(meteoClient, clients, logger)
	handler := tool.NewHandler(weatherService, cfg.CityMaxLength)
	tracker := &tool.InFlightTracker{}

	q := qilin.New("weather", qilin.WithVersion("1.0.0"))
	q.UseInTools(
		tool.CorrelationIDMiddleware(logger),
		tool.MetricsMiddleware(tracker),
	)
	tool.Register(q, handler)

	var opsServer *ops.Server
	if cfg.OpsPort != "" {
		opsServer = ops.NewServer(cfg.OpsPort, clients.Started, logger)
		opsServer.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("mcp server starting",
		zap.String("tool", tool.Name),
		zap.String("geocoding_url", cfg.GeocodingAPIURL),
		zap.String("forecast_url", cfg.ForecastAPIURL))

	errCh := make(chan error, 1)
	go func() {
		errCh <- q.Start(qilin.StartWithContext(ctx))
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error("mcp server", zap.Error(err))
		}
	}
	stop()

	logger.Info("graceful shutdown triggered")
	if opsServer != nil {
		opsServer.SetDraining(true)
	}

	drainCtx, drainCancel := context.WithTimeout(context.Background(), cfg.DrainTimeout)
	defer drainCancel()
	if err := tracker.WaitForZero(drainCtx, cfg.DrainCheckInterval); err != nil {
		logger.Warn("in-flight invocations not completed",
			zap.Error(err),
			zap.Int64("remaining", tracker.Count()))
	}

	clients.Stop()

	if opsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("ops server shutdown", zap.Error(err))
		}
	}
	logger.Info("shutdown complete")
}
