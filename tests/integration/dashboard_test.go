package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devicedash/devicedash/internal/domain/adgate"
	"github.com/devicedash/devicedash/internal/domain/compose"
	"github.com/devicedash/devicedash/internal/domain/dispatch"
	"github.com/devicedash/devicedash/internal/domain/entitlement"
	"github.com/devicedash/devicedash/internal/domain/module"
	"github.com/devicedash/devicedash/internal/logging"
	"github.com/devicedash/devicedash/internal/shared/types"
	"github.com/devicedash/devicedash/internal/storage"
	"github.com/devicedash/devicedash/tests/helpers/testutil"
)

// buildEngine assembles a full engine over a shared blob backend so tests
// can simulate cold restarts.
func buildEngine(blob storage.Blob, resolver entitlement.Resolver, gate adgate.Provider) (*module.Store, *compose.Composer) {
	logger := logging.NewNop()
	store := module.NewStore(blob, logger)
	registry := dispatch.NewDefaultRegistry()
	unlocker := compose.NewUnlocker(resolver, gate, registry, logger)
	composer := compose.NewComposer(store, resolver, registry, unlocker, compose.DefaultPolicy(), logger)
	return store, composer
}

func TestConfigurationSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	blob, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	resolver := entitlement.NewMemory(types.Entitlement{Premium: true})
	store, composer := buildEngine(blob, resolver, adgate.NewMemory())

	store.Toggle("mod-camera")
	store.Reorder([]int{0}, 3)
	composer.Recompose()
	before := composer.Current()

	// Cold restart over the same preference store
	blob2, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	_, composer2 := buildEngine(blob2, resolver, adgate.NewMemory())

	assert.Equal(t, before, composer2.Current())
}

func TestFreeUserSeesAdsUntilPurchase(t *testing.T) {
	resolver := entitlement.NewMemory(types.Entitlement{})
	store, composer := buildEngine(storage.NewMemoryStore(), resolver, adgate.NewMemory())

	countAds := func() int {
		ads := 0
		for _, item := range composer.Current() {
			if item.Kind == types.ItemAdSlot {
				ads++
			}
		}
		return ads
	}

	require.Equal(t, len(store.Snapshot()), countAds(),
		"card list shows one slot per module for free users")

	resolver.Set(types.Entitlement{Premium: true})
	composer.Recompose()
	assert.Zero(t, countAds())
}

func TestAdUnlockDoesNotSurviveRestart(t *testing.T) {
	blob := storage.NewMemoryStore()
	resolver := entitlement.NewMemory(types.Entitlement{})
	gate := adgate.NewMemory()

	_, composer := buildEngine(blob, resolver, gate)

	state, err := composer.Unlocker().RequestUnlock(t.Context(), dispatch.KeyDuplicateScan, "view-1")
	require.NoError(t, err)
	require.Equal(t, types.GateUnlocked, state)

	// Fresh engine instance simulates a cold launch
	_, composer2 := buildEngine(blob, resolver, gate)
	assert.NotEqual(t, types.GateUnlocked,
		composer2.Unlocker().State(dispatch.KeyDuplicateScan))

	// Unless entitlement itself changed
	resolver.Set(types.Entitlement{Tools: true})
	assert.Equal(t, types.GateUnlocked,
		composer2.Unlocker().State(dispatch.KeyDuplicateScan))
}

func TestUnlockPresentsExactlyOneAd(t *testing.T) {
	resolver := testutil.NewMockResolver(t, types.Entitlement{})
	gate := new(testutil.MockAdGate)
	gate.On("Ready").Return(true)
	gate.On("Present", mock.Anything).Return(true, nil).Once()

	_, composer := buildEngine(storage.NewMemoryStore(), resolver, gate)

	state, err := composer.Unlocker().RequestUnlock(t.Context(), dispatch.KeyDuplicateScan, "view-1")
	require.NoError(t, err)
	require.Equal(t, types.GateUnlocked, state)

	// The session unlock satisfies the second request without another ad
	state, err = composer.Unlocker().RequestUnlock(t.Context(), dispatch.KeyDuplicateScan, "view-2")
	require.NoError(t, err)
	assert.Equal(t, types.GateUnlocked, state)

	gate.AssertNumberOfCalls(t, "Present", 1)
	gate.AssertExpectations(t)
}

func TestVersionSkewDoesNotLoseConfiguration(t *testing.T) {
	// A blob written by a future version with an extra field and an unknown
	// dispatch key must load without data loss or crashes.
	blob := storage.NewMemoryStore()
	future := `[
		{"id":"mod-xray","name":"X-Ray","dispatch_key":"xray","enabled":true,"order":0,"shiny":true},
		{"id":"mod-cpu","name":"CPU","dispatch_key":"cpu","enabled":false,"order":1}
	]`
	require.NoError(t, blob.Write(module.StorageKey, []byte(future)))

	resolver := entitlement.NewMemory(types.Entitlement{AdFree: true})
	store, composer := buildEngine(blob, resolver, adgate.NewMemory())

	descriptors := store.Load()
	require.Len(t, descriptors, 2)

	items := composer.Current()
	require.Len(t, items, 1, "only the enabled module renders")
	assert.Equal(t, dispatch.UnknownKey, items[0].Feature.Key)
	assert.Equal(t, "mod-xray", items[0].Module.ID)
}
