// Package adgate defines the rewarded-ad capability interface the engine
// consumes for temporary feature unlocks.
//
// Components:
//   - Provider: Readiness check plus single-shot present-and-await-result
//   - Memory: Scriptable in-process provider for tests and offline mode
//   - Network: Ad-network bridge client with cached readiness probes
//
// A presentation is modal for its triggering control but never blocks the
// rest of the dashboard; concurrency limits live in the unlock controller,
// not here.
package adgate
