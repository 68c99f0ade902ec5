// Package http provides HTTP handlers and routing for the engine REST API.
//
// This package implements all HTTP endpoints using the Gin framework.
//
// Endpoints:
//   - Health: / and /health
//   - Dashboard: /dashboard
//   - Modules: /modules, /modules/:id/toggle, /modules/reorder
//   - Lifecycle: /lifecycle/foreground
//   - Entitlement: /entitlement, /entitlement/refresh
//   - Gates: /gates/:key/unlock, /gates/:key/dismiss
//
// Features:
//   - JSON request/response handling
//   - Proper HTTP status codes
//   - Error response formatting
package http
