package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devicedash/devicedash/internal/domain/adgate"
	"github.com/devicedash/devicedash/internal/domain/dispatch"
	"github.com/devicedash/devicedash/internal/domain/entitlement"
	"github.com/devicedash/devicedash/internal/domain/module"
	"github.com/devicedash/devicedash/internal/logging"
	"github.com/devicedash/devicedash/internal/shared/types"
	"github.com/devicedash/devicedash/internal/storage"
)

type fixture struct {
	store    *module.Store
	resolver *entitlement.Memory
	gate     *adgate.Memory
	composer *Composer
}

func newFixture(t *testing.T, ent types.Entitlement, policy Policy) *fixture {
	t.Helper()

	store := module.NewStore(storage.NewMemoryStore(), logging.NewNop())
	resolver := entitlement.NewMemory(ent)
	gate := adgate.NewMemory()
	registry := dispatch.NewDefaultRegistry()
	unlocker := NewUnlocker(resolver, gate, registry, logging.NewNop())

	return &fixture{
		store:    store,
		resolver: resolver,
		gate:     gate,
		composer: NewComposer(store, resolver, registry, unlocker, policy, logging.NewNop()),
	}
}

func countKinds(items []types.PresentationItem) (modules, ads int) {
	for _, item := range items {
		switch item.Kind {
		case types.ItemModule:
			modules++
		case types.ItemAdSlot:
			ads++
		}
	}
	return
}

func TestNoAdsForEntitledUsers(t *testing.T) {
	for _, ent := range []types.Entitlement{
		{Premium: true},
		{Tools: true},
		{AdFree: true},
	} {
		f := newFixture(t, ent, DefaultPolicy())
		_, ads := countKinds(f.composer.Current())
		assert.Zero(t, ads, "entitlement %+v must suppress all ad slots", ent)
	}
}

func TestAdCadenceListLayout(t *testing.T) {
	f := newFixture(t, types.Entitlement{}, Policy{Layout: LayoutList, Cadence: 1})

	items := f.composer.Current()
	moduleCount, ads := countKinds(items)

	enabled := len(f.store.Snapshot())
	assert.Equal(t, enabled, moduleCount)
	// Cadence 1: one slot before every module
	assert.Equal(t, enabled, ads)
	assert.Equal(t, types.ItemAdSlot, items[0].Kind, "first item is an ad slot")
}

func TestAdCadenceConfigurable(t *testing.T) {
	f := newFixture(t, types.Entitlement{}, Policy{Layout: LayoutList, Cadence: 3})

	items := f.composer.Current()
	moduleCount, ads := countKinds(items)

	enabled := len(f.store.Snapshot())
	assert.Equal(t, enabled, moduleCount)
	assert.Equal(t, (enabled+2)/3, ads)
}

func TestGridLayoutSingleLeadingSlot(t *testing.T) {
	f := newFixture(t, types.Entitlement{}, Policy{Layout: LayoutGrid})

	items := f.composer.Current()
	moduleCount, ads := countKinds(items)

	assert.Equal(t, len(f.store.Snapshot()), moduleCount)
	assert.Equal(t, 1, ads)
	assert.Equal(t, types.ItemAdSlot, items[0].Kind)
}

func TestUnknownDispatchKeyDegrades(t *testing.T) {
	seed := []types.ModuleDescriptor{
		{ID: "mod-old", Name: "Removed Feature", DispatchKey: "hologram", Enabled: true, Order: 0},
		{ID: "mod-cpu", Name: "CPU", DispatchKey: dispatch.KeyCPU, Enabled: true, Order: 1},
	}
	store := module.NewStore(storage.NewMemoryStore(), logging.NewNop(), module.WithSeed(seed))
	resolver := entitlement.NewMemory(types.Entitlement{Premium: true})
	registry := dispatch.NewDefaultRegistry()
	unlocker := NewUnlocker(resolver, adgate.NewMemory(), registry, logging.NewNop())
	composer := NewComposer(store, resolver, registry, unlocker, DefaultPolicy(), logging.NewNop())

	items := composer.Current()
	require.Len(t, items, 2)
	assert.Equal(t, dispatch.UnknownKey, items[0].Feature.Key,
		"unrecognized key resolves to the placeholder, still in sequence")
	assert.Equal(t, dispatch.KeyCPU, items[1].Feature.Key)
}

func TestGatedModulesStayInSequence(t *testing.T) {
	f := newFixture(t, types.Entitlement{}, DefaultPolicy())

	var sawGated bool
	for _, item := range f.composer.Current() {
		if item.Kind == types.ItemModule && item.Feature.Gated {
			sawGated = true
			assert.NotEmpty(t, item.Gate, "gated module carries its gate state")
		}
	}
	assert.True(t, sawGated, "gated modules are not filtered out")
}

func TestRecomposeOnToggle(t *testing.T) {
	f := newFixture(t, types.Entitlement{Premium: true}, DefaultPolicy())

	before, _ := countKinds(f.composer.Current())

	ch, cancel := f.composer.Subscribe()
	defer cancel()

	f.store.Toggle("mod-cpu")
	f.composer.Recompose()

	after, _ := countKinds(f.composer.Current())
	assert.Equal(t, before-1, after)

	select {
	case <-ch:
	default:
		t.Fatal("expected a publish signal after recompose")
	}
}

func TestEntitlementChangeRemovesAds(t *testing.T) {
	f := newFixture(t, types.Entitlement{}, DefaultPolicy())

	_, adsBefore := countKinds(f.composer.Current())
	require.NotZero(t, adsBefore)

	// Purchase completes mid-session
	f.resolver.Set(types.Entitlement{Premium: true})
	f.composer.Recompose()

	_, adsAfter := countKinds(f.composer.Current())
	assert.Zero(t, adsAfter, "stale entitlement must never be cached")
}

func TestCurrentReturnsCopy(t *testing.T) {
	f := newFixture(t, types.Entitlement{Premium: true}, DefaultPolicy())

	items := f.composer.Current()
	require.NotEmpty(t, items)
	items[0] = types.NewAdSlot()

	assert.NotEqual(t, types.ItemAdSlot, f.composer.Current()[0].Kind,
		"published snapshot must not be mutable by callers")
}
