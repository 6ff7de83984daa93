package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Port    string `envconfig:"METRICS_PORT" default:"9090"`
}

// Server exposes /metrics on its own port.
type Server struct {
	srv *http.Server
}

// StartMetricsServer registers all collectors and serves them; returns
// nil when metrics are disabled.
func StartMetricsServer(cfg Config, logger *logrus.Logger) *Server {
	if !cfg.Enabled {
		logger.Info("metrics server disabled")
		return nil
	}

	RegisterMetrics(logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: mux,
	}

	go func() {
		logger.Infof("metrics server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("metrics server failed: %v", err)
		}
	}()

	return &Server{srv: srv}
}

func (s *Server) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
