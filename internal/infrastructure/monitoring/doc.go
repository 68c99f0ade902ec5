// Package monitoring provides Prometheus metrics for the dashboard engine.
//
// Metrics cover HTTP traffic, composition passes and their output shape,
// module store mutations and persist retries, entitlement refreshes,
// rewarded-ad outcomes, and WebSocket connections.
//
// Example Usage:
//
//	metrics := monitoring.NewMetrics()
//	router.Use(monitoring.Middleware(metrics))
//	metrics.RecordComposition(len(items), adSlots)
package monitoring
