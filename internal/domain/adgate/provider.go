package adgate

import "context"

// Provider fronts the rewarded-ad network. The engine consumes it, never
// implements it.
//
// Ready is best-effort and may be stale by a few seconds. Present is a
// single-shot presentation that blocks until the user finishes or dismisses
// the ad, then reports whether the unlock was earned. Callers must not
// invoke Present concurrently for the same gated slot; the unlock
// controller enforces at-most-one in-flight presentation per module.
type Provider interface {
	Ready() bool
	Present(ctx context.Context) (earned bool, err error)
}
