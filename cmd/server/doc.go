// Package main is the entry point for the dashboard engine server.
//
// The server owns persisted module configuration and composes the
// entitlement-gated dashboard sequence handed to rendering clients.
//
// The server provides:
//   - REST API for module configuration and dashboard snapshots
//   - WebSocket push invalidation when the sequence changes
//   - Entitlement and rewarded-ad gateway integration
//   - Rate limiting and Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - -dev flag for colored debug logging
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown with a final persist retry
package main
