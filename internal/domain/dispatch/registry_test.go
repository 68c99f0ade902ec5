package dispatch

import (
	"testing"

	"github.com/devicedash/devicedash/internal/shared/types"
)

func TestResolveShippedKey(t *testing.T) {
	r := NewDefaultRegistry()

	feature := r.Resolve(KeyCPU)
	if feature.Key != KeyCPU {
		t.Errorf("Expected key %s, got %s", KeyCPU, feature.Key)
	}
	if feature.Gated {
		t.Error("CPU feature should not be gated")
	}
}

func TestResolveUnknownKey(t *testing.T) {
	r := NewDefaultRegistry()

	feature := r.Resolve("hologram_projector")
	if feature.Key != UnknownKey {
		t.Errorf("Expected fallback key %s, got %s", UnknownKey, feature.Key)
	}
	if feature.Title == "" {
		t.Error("Fallback feature should be renderable")
	}
}

func TestResolveGatedKey(t *testing.T) {
	r := NewDefaultRegistry()

	feature := r.Resolve(KeyDuplicateScan)
	if !feature.Gated {
		t.Error("Duplicate scanner should be gated")
	}
	if feature.RequiredFlag != types.FlagTools {
		t.Errorf("Expected flag %s, got %s", types.FlagTools, feature.RequiredFlag)
	}
}

func TestRegisterIgnoresInvalid(t *testing.T) {
	r := NewRegistry()
	r.Register("", func() types.FeatureDefinition { return types.FeatureDefinition{} })
	r.Register("valid", nil)

	if len(r.Keys()) != 0 {
		t.Errorf("Expected empty registry, got %d keys", len(r.Keys()))
	}
}

func TestKnown(t *testing.T) {
	r := NewDefaultRegistry()

	if !r.Known(KeyBattery) {
		t.Error("Battery should be a known key")
	}
	if r.Known("flux_capacitor") {
		t.Error("Unshipped key should not be known")
	}
}
