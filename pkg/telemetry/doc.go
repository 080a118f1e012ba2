// Package telemetry provides observability for Minerva.
//
// # Components
//
//   - logging: structured logging on log/slog
//   - metrics: Prometheus metrics collection
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	logger.SetAsDefault()
//
//	m, _ := metrics.New(metrics.DefaultConfig(), nil)
//	http.Handle("/metrics", m.Handler())
package telemetry
