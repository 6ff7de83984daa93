package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// RegisterMetrics registers the process-wide collectors plus the
// provisioning and HTTP metrics.
func RegisterMetrics(logger *logrus.Logger) {
	registerIfNotExists(collectors.NewGoCollector(), "go_collector", logger)
	registerIfNotExists(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), "process_collector", logger)

	registerIfNotExists(httpRequestsTotal, "http_requests_total", logger)
	registerIfNotExists(httpRequestDuration, "http_request_duration", logger)
	registerIfNotExists(httpErrorsTotal, "http_errors_total", logger)

	registerIfNotExists(simulationsTotal, "simulations_total", logger)
	registerIfNotExists(fallbacksTotal, "existing_pool_fallbacks_total", logger)
	registerIfNotExists(assembliesTotal, "assemblies_total", logger)
}

// registerIfNotExists registers a collector if it's not already registered
func registerIfNotExists(collector prometheus.Collector, name string, logger *logrus.Logger) {
	if err := prometheus.Register(collector); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegErr) {
			logger.Debugf("%s already registered", name)
		} else {
			logger.Errorf("Failed to register %s: %v", name, err)
		}
	}
}
