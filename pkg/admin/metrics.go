package admin

import "github.com/VictoriaMetrics/metrics"

// Counters tracking connect attempts and simple operation calls, and a
// histogram of locate traversal depth, exposed for scraping via
// metrics.WritePrometheus.
var (
	connectAttempts  = metrics.NewCounter(`xrdadmin_connect_attempts_total`)
	locateDepthTotal = metrics.NewHistogram(`xrdadmin_locate_depth_levels`)
	operationsTotal  = func(op string) *metrics.Counter {
		return metrics.GetOrCreateCounter(`xrdadmin_operations_total{op="` + op + `"}`)
	}
)
