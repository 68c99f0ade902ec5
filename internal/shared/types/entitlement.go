package types

// EntitlementFlag identifies one purchasable capability.
type EntitlementFlag string

const (
	// FlagPremium is the primary subscription tier
	FlagPremium EntitlementFlag = "premium"
	// FlagTools is the secondary tools tier
	FlagTools EntitlementFlag = "tools"
	// FlagAdFree is the standalone ad-removal purchase
	FlagAdFree EntitlementFlag = "ad_free"
)

// Entitlement is a read-only snapshot of the user's purchase state.
//
// The three flags are independent: a user may hold any subset, and no flag
// may be inferred from another. Feature gates must check the specific flag
// they require, never Entitled.
type Entitlement struct {
	Premium bool `json:"premium"`
	Tools   bool `json:"tools"`
	AdFree  bool `json:"ad_free"`
}

// Entitled reports whether ad slots are suppressed for this user.
// Any paid tier or the ad-removal purchase qualifies.
func (e Entitlement) Entitled() bool {
	return e.Premium || e.Tools || e.AdFree
}

// Has reports whether a specific capability flag is held.
func (e Entitlement) Has(flag EntitlementFlag) bool {
	switch flag {
	case FlagPremium:
		return e.Premium
	case FlagTools:
		return e.Tools
	case FlagAdFree:
		return e.AdFree
	default:
		return false
	}
}
