package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devicedash/devicedash/internal/shared/types"
)

func TestMemoryCurrent(t *testing.T) {
	m := NewMemory(types.Entitlement{Premium: true})
	assert.True(t, m.Current().Premium)
	assert.False(t, m.Current().Tools)
}

func TestMemorySetNotifies(t *testing.T) {
	m := NewMemory(types.Entitlement{})
	ch, cancel := m.Subscribe()
	defer cancel()

	m.Set(types.Entitlement{AdFree: true})

	select {
	case <-ch:
	default:
		t.Fatal("expected a change signal")
	}
	assert.True(t, m.Current().AdFree)
}

func TestMemorySetUnchangedIsSilent(t *testing.T) {
	m := NewMemory(types.Entitlement{Tools: true})
	ch, cancel := m.Subscribe()
	defer cancel()

	m.Set(types.Entitlement{Tools: true})

	select {
	case <-ch:
		t.Fatal("unchanged state must not notify")
	default:
	}
}

func TestFlagsAreIndependent(t *testing.T) {
	// Ad removal alone must not imply a paid tier
	e := types.Entitlement{AdFree: true}
	assert.True(t, e.Entitled())
	assert.False(t, e.Has(types.FlagPremium))
	assert.False(t, e.Has(types.FlagTools))
}
