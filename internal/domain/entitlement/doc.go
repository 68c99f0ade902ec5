// Package entitlement defines the capability interface the engine consumes
// to decide what a user may see.
//
// The engine never implements purchase validation; it reads snapshots from
// a Resolver and reacts to change notifications. Two adapters ship:
//
//   - Memory: settable in-process state for tests and offline mode
//   - Remote: billing-service client (resty) behind a circuit breaker
//
// Failure Semantics:
//   - A failed Refresh keeps the last-known snapshot in effect; the error
//     surfaces only to explicitly user-initiated restore/purchase flows.
package entitlement
