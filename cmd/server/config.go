package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/mrruby/stonfi-liquidity-app/internal/logging"
	"github.com/mrruby/stonfi-liquidity-app/internal/metrics"
	"github.com/mrruby/stonfi-liquidity-app/internal/server"
)

type config struct {
	LogFormat  logging.LogFormat `envconfig:"LOG_FORMAT" default:"text"`
	CatalogURL string            `envconfig:"CATALOG_URL" default:"https://api.ston.fi"`
	QuoteURL   string            `envconfig:"QUOTE_URL" default:"https://api.ston.fi"`
	RPCURL     string            `envconfig:"TON_RPC_URL" default:"https://tonapi.io"`
	TonAPIKey  string            `envconfig:"TON_API_KEY"`
	Server     server.Config
	Metrics    metrics.Config
}

func newConfig() (config, error) {
	var cfg config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	return cfg, nil
}
