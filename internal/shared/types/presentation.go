package types

// ItemKind tags the two variants of a presentation item.
type ItemKind string

const (
	ItemModule ItemKind = "module"
	ItemAdSlot ItemKind = "ad_slot"
)

// FeatureDefinition is the capability handle the dispatcher resolves from a
// descriptor's dispatch key. The rendering layer instantiates the concrete
// view from it; the engine only routes.
type FeatureDefinition struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Icon  string `json:"icon"`

	// Gated features require RequiredFlag or an ad unlock at interaction time
	Gated        bool            `json:"gated"`
	RequiredFlag EntitlementFlag `json:"required_flag,omitempty"`
}

// GateState describes the unlock state machine position of a gated module.
type GateState string

const (
	GateLocked       GateState = "locked"
	GateAdAvailable  GateState = "ad_available"
	GateAdPresenting GateState = "ad_presenting"
	GateUnlocked     GateState = "unlocked"
)

// PresentationItem is one entry of the composed dashboard sequence: either
// a module (descriptor plus resolved feature and gate state) or an ad slot.
// Sequences are produced fresh on every composition pass and never mutated
// in place.
type PresentationItem struct {
	Kind ItemKind `json:"kind"`

	// Module fields, zero-valued for ad slots
	Module  *ModuleDescriptor  `json:"module,omitempty"`
	Feature *FeatureDefinition `json:"feature,omitempty"`
	Gate    GateState          `json:"gate,omitempty"`
}

// NewAdSlot returns an ad placeholder item.
func NewAdSlot() PresentationItem {
	return PresentationItem{Kind: ItemAdSlot}
}

// NewModuleItem returns a module item for the given descriptor and feature.
func NewModuleItem(desc ModuleDescriptor, feature FeatureDefinition, gate GateState) PresentationItem {
	return PresentationItem{
		Kind:    ItemModule,
		Module:  &desc,
		Feature: &feature,
		Gate:    gate,
	}
}
