// Package metrics exposes the Prometheus registry used by the directory.
// All metrics are defined in their respective packages (client, loader,
// screen, session) and registered through promauto.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the directory.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Handler serves the default gatherer in the Prometheus text format. Scrape
// counters (promhttp_metric_handler_*) are registered on Registry.
func Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(
		Registry,
		promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}),
	)
}

// Metrics Documentation
//
// Fetch Metrics (pkg/client):
//   - directory_fetch_total{outcome} (Counter): Fetches by outcome (success, failure)
//   - directory_fetch_duration_seconds (Histogram): Fetch duration including decode
//   - directory_fetch_errors_total{class} (Counter): Failures by class (network, http, parse)
//
// Load Metrics (pkg/loader):
//   - directory_load_state (Gauge): 0=loading, 1=ready, 2=failed
//   - directory_records_loaded (Gauge): Records held after the load
//
// Navigation Metrics (pkg/screen):
//   - directory_navigation_total{direction, result} (Counter): Next/Previous requests
//     by result (moved, boundary, not_ready)
//
// Session Metrics (pkg/session):
//   - directory_session_errors_total{operation} (Counter): Redis session store errors
//
// Example Prometheus Queries:
//
//   # Load failed
//   directory_load_state == 2
//
//   # Failure rate by class
//   rate(directory_fetch_errors_total[5m])
//
//   # Share of navigation clicks that hit a boundary
//   sum(rate(directory_navigation_total{result="boundary"}[5m])) /
//   sum(rate(directory_navigation_total[5m]))
