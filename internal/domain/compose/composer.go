package compose

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/devicedash/devicedash/internal/domain/dispatch"
	"github.com/devicedash/devicedash/internal/domain/entitlement"
	"github.com/devicedash/devicedash/internal/domain/module"
	"github.com/devicedash/devicedash/internal/infrastructure/monitoring"
	"github.com/devicedash/devicedash/internal/logging"
	"github.com/devicedash/devicedash/internal/shared/types"
)

// Layout selects between the two dashboard composition modes.
type Layout string

const (
	// LayoutList interleaves one ad slot before every Cadence-th module.
	LayoutList Layout = "list"
	// LayoutGrid emits a single ad slot before the grid.
	LayoutGrid Layout = "grid"
)

// Policy is the ad-insertion configuration. Cadence is the number of module
// items between interleaved slots in list layout; it is configuration, not
// a hard-coded rule, because the two observed dashboard variants disagree.
type Policy struct {
	Layout  Layout
	Cadence int
}

// DefaultPolicy matches the card-list dashboard: one slot per module.
func DefaultPolicy() Policy {
	return Policy{Layout: LayoutList, Cadence: 1}
}

// Composer produces the ordered presentation sequence for the current
// session. Composition is side-effect-free: gated modules stay in the
// sequence with their gate state attached, and any ad presentation is
// deferred to explicit user action through the Unlocker.
type Composer struct {
	store    *module.Store
	resolver entitlement.Resolver
	registry *dispatch.Registry
	unlocker *Unlocker
	policy   Policy
	logger   *logging.Logger
	metrics  *monitoring.Metrics

	mu      sync.RWMutex
	current []types.PresentationItem

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// NewComposer creates a composer over explicitly injected collaborators.
func NewComposer(store *module.Store, resolver entitlement.Resolver, registry *dispatch.Registry, unlocker *Unlocker, policy Policy, logger *logging.Logger) *Composer {
	if policy.Cadence < 1 {
		policy.Cadence = 1
	}
	c := &Composer{
		store:    store,
		resolver: resolver,
		registry: registry,
		unlocker: unlocker,
		policy:   policy,
		logger:   logger,
		subs:     make(map[int]chan struct{}),
	}
	c.Recompose()
	return c
}

// WithMetrics attaches composition counters. Returns the composer for
// chaining during wiring.
func (c *Composer) WithMetrics(metrics *monitoring.Metrics) *Composer {
	c.metrics = metrics
	return c
}

// Current returns the latest published presentation sequence. The slice is
// a fresh snapshot; the rendering layer never observes a partial update.
func (c *Composer) Current() []types.PresentationItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]types.PresentationItem, len(c.current))
	copy(out, c.current)
	return out
}

// Recompose rebuilds the sequence from the module store and the current
// entitlement snapshot, publishes it atomically, and notifies subscribers.
func (c *Composer) Recompose() {
	items := c.build()

	c.mu.Lock()
	c.current = items
	c.mu.Unlock()

	if c.metrics != nil {
		slots := 0
		for _, it := range items {
			if it.Kind == types.ItemAdSlot {
				slots++
			}
		}
		c.metrics.RecordComposition(len(items), slots)
	}

	c.notify()
	c.logger.Debug("presentation recomposed", zap.Int("items", len(items)))
}

// Run recomposes whenever the module store or the entitlement resolver
// reports a change, until ctx is cancelled. Entitlement is never cached
// across a change notification.
func (c *Composer) Run(ctx context.Context) {
	storeCh, cancelStore := c.store.Subscribe()
	defer cancelStore()
	entCh, cancelEnt := c.resolver.Subscribe()
	defer cancelEnt()

	for {
		select {
		case <-ctx.Done():
			return
		case <-storeCh:
			c.Recompose()
		case <-entCh:
			c.Recompose()
		}
	}
}

// Subscribe returns a channel signalled after every publish, plus a cancel
// func. Pull the new snapshot via Current.
func (c *Composer) Subscribe() (<-chan struct{}, func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan struct{}, 1)
	c.subs[id] = ch

	return ch, func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

// Unlocker exposes the gate controller for the interaction layer.
func (c *Composer) Unlocker() *Unlocker {
	return c.unlocker
}

// Policy returns the active ad-insertion policy.
func (c *Composer) Policy() Policy {
	return c.policy
}

// build assembles a fresh presentation sequence.
func (c *Composer) build() []types.PresentationItem {
	enabled := c.store.Snapshot()
	ent := c.resolver.Current()
	showAds := !ent.Entitled()

	items := make([]types.PresentationItem, 0, len(enabled)*2)

	if showAds && c.policy.Layout == LayoutGrid && len(enabled) > 0 {
		items = append(items, types.NewAdSlot())
	}

	for i, desc := range enabled {
		if showAds && c.policy.Layout == LayoutList && i%c.policy.Cadence == 0 {
			items = append(items, types.NewAdSlot())
		}

		feature := c.registry.Resolve(desc.DispatchKey)
		gate := types.GateState("")
		if feature.Gated {
			gate = c.unlocker.State(desc.DispatchKey)
		}
		items = append(items, types.NewModuleItem(desc, feature, gate))
	}

	return items
}

func (c *Composer) notify() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
