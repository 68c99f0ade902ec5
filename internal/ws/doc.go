// Package ws provides WebSocket push invalidation for the dashboard.
//
// The rendering layer pulls presentation snapshots over REST; this package
// nudges connected clients when the sequence changes so they re-pull.
//
// Message Types (Server → Client):
//   - system: Connection established
//   - presentation_changed: A new sequence was published
//
// Example Usage:
//
//	handler := ws.NewHandler(composer, metrics, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws
