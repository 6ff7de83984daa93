package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mrruby/stonfi-liquidity-app/internal/catalog"
	"github.com/mrruby/stonfi-liquidity-app/internal/graceful"
	"github.com/mrruby/stonfi-liquidity-app/internal/logging"
	"github.com/mrruby/stonfi-liquidity-app/internal/metrics"
	"github.com/mrruby/stonfi-liquidity-app/internal/provision"
	"github.com/mrruby/stonfi-liquidity-app/internal/server"
	"github.com/mrruby/stonfi-liquidity-app/internal/stonapi"
	"github.com/mrruby/stonfi-liquidity-app/internal/ton"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := newConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewLogger(cfg.LogFormat)

	metricsServer := metrics.StartMetricsServer(cfg.Metrics, logger)
	defer func() {
		// ctx is already cancelled by the time this runs; Stop applies
		// its own shutdown timeout
		if err := metricsServer.Stop(context.Background()); err != nil {
			logger.Errorf("failed to stop metrics server: %v", err)
		}
	}()

	catalogClient := catalog.NewClient(cfg.CatalogURL)
	quoteClient := stonapi.NewClient(cfg.QuoteURL)
	metaClient := ton.NewClient(cfg.RPCURL, cfg.TonAPIKey)

	srv := server.New(
		cfg.Server,
		logger,
		catalogClient,
		provision.NewStore(),
		provision.NewOrchestrator(logger, quoteClient),
		provision.NewAssembler(logger, metaClient),
	)

	go func() {
		sig := <-graceful.ShutdownChan()
		logger.Infof("received exit signal: %v", sig)
		cancel()
	}()

	if err := srv.Start(ctx); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
