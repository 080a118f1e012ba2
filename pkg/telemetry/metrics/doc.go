// Package metrics provides Prometheus metrics for governance components.
//
// # Usage
//
// Create a Metrics handle and hand it to the components that record:
//
//	m, registry := metrics.New(metrics.DefaultConfig(), nil)
//
//	eng := engine.New(engine.Config{Metrics: m})
//
//	http.Handle("/metrics", m.Handler())
//
// # Nil Safety
//
// Every recording method is a no-op on a nil *Metrics. Components accept
// an optional handle and call it unconditionally; deployments that do not
// scrape simply pass nil.
package metrics
