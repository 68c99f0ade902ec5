package compose

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/devicedash/devicedash/internal/domain/adgate"
	"github.com/devicedash/devicedash/internal/domain/dispatch"
	"github.com/devicedash/devicedash/internal/domain/entitlement"
	"github.com/devicedash/devicedash/internal/logging"
	"github.com/devicedash/devicedash/internal/shared/types"
)

var (
	// ErrNotGated is returned when an unlock is requested for a feature
	// that needs no unlock.
	ErrNotGated = errors.New("feature is not gated")
	// ErrPresentationInFlight is returned when a presentation for the same
	// gated slot is already running.
	ErrPresentationInFlight = errors.New("ad presentation already in flight")
	// ErrAdUnavailable is returned when no rewarded ad is loaded.
	ErrAdUnavailable = errors.New("no ad currently available")
)

// Unlocker drives the per-module unlock state machine:
//
//	Locked -> AdAvailable        when an ad becomes ready
//	AdAvailable -> AdPresenting  on user request, at most one in flight
//	AdPresenting -> Unlocked     on ad success (session-scoped)
//	AdPresenting -> AdAvailable  on ad failure
//	Locked -> Unlocked           whenever entitlement qualifies; this
//	                             short-circuit is checked first on every
//	                             evaluation
//
// Unlocks earned through ads live only as long as this Unlocker: a cold
// launch constructs a fresh one and re-locks everything unless entitlement
// itself changed.
type Unlocker struct {
	resolver entitlement.Resolver
	gate     adgate.Provider
	registry *dispatch.Registry
	logger   *logging.Logger

	mu       sync.Mutex
	unlocked map[string]bool   // dispatch key -> session unlock earned
	inFlight map[string]string // dispatch key -> live view token
}

// NewUnlocker creates the session-scoped unlock controller.
func NewUnlocker(resolver entitlement.Resolver, gate adgate.Provider, registry *dispatch.Registry, logger *logging.Logger) *Unlocker {
	return &Unlocker{
		resolver: resolver,
		gate:     gate,
		registry: registry,
		logger:   logger,
		unlocked: make(map[string]bool),
		inFlight: make(map[string]string),
	}
}

// State evaluates the current gate state for a dispatch key. Entitlement is
// re-read on every call; a qualifying purchase wins over any ad state.
func (u *Unlocker) State(key string) types.GateState {
	feature := u.registry.Resolve(key)
	if !feature.Gated {
		return types.GateUnlocked
	}
	if u.resolver.Current().Has(feature.RequiredFlag) {
		return types.GateUnlocked
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.unlocked[key] {
		return types.GateUnlocked
	}
	if _, presenting := u.inFlight[key]; presenting {
		return types.GateAdPresenting
	}
	if u.gate.Ready() {
		return types.GateAdAvailable
	}
	return types.GateLocked
}

// RequestUnlock runs the ad-unlock flow for a gated feature. It blocks
// until the presentation resolves. viewToken identifies the originating
// control; if Dismiss is called for it while the ad is showing, the result
// is dropped rather than applied to a no-longer-visible control.
func (u *Unlocker) RequestUnlock(ctx context.Context, key, viewToken string) (types.GateState, error) {
	feature := u.registry.Resolve(key)
	if !feature.Gated {
		return types.GateUnlocked, ErrNotGated
	}
	if u.resolver.Current().Has(feature.RequiredFlag) {
		return types.GateUnlocked, nil
	}

	u.mu.Lock()
	if u.unlocked[key] {
		u.mu.Unlock()
		return types.GateUnlocked, nil
	}
	if _, presenting := u.inFlight[key]; presenting {
		u.mu.Unlock()
		return types.GateAdPresenting, ErrPresentationInFlight
	}
	if !u.gate.Ready() {
		u.mu.Unlock()
		return types.GateLocked, ErrAdUnavailable
	}
	u.inFlight[key] = viewToken
	u.mu.Unlock()

	earned, err := u.gate.Present(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()

	live := u.inFlight[key] == viewToken
	delete(u.inFlight, key)

	if !live {
		// Originating view was dismissed mid-presentation
		u.logger.Debug("dropping ad result for dismissed view",
			zap.String("key", key), zap.String("view", viewToken))
		return types.GateAdAvailable, nil
	}
	if err != nil {
		u.logger.Warn("ad presentation failed",
			zap.String("key", key), zap.Error(err))
		return types.GateAdAvailable, nil
	}
	if !earned {
		return types.GateAdAvailable, nil
	}

	u.unlocked[key] = true
	return types.GateUnlocked, nil
}

// Dismiss invalidates a view token. A presentation still in flight for it
// will have its result dropped. With nothing in flight this is a no-op;
// a stray dismiss must never manufacture a presenting state.
func (u *Unlocker) Dismiss(key, viewToken string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if tok, ok := u.inFlight[key]; ok && tok == viewToken {
		u.inFlight[key] = ""
	}
}
