package types

import "sort"

// ModuleDescriptor describes one feature module of the dashboard.
//
// ID and DispatchKey are assigned once at creation and never change:
// re-pointing a persisted descriptor at a different feature would silently
// swap the module a user configured. Enabled and Order are the only
// user-mutable fields and are changed exclusively through the module store.
type ModuleDescriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DispatchKey string `json:"dispatch_key"`
	Enabled     bool   `json:"enabled"`
	Order       int    `json:"order"`

	// Presentation-only metadata, carries no behavior
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// SortDescriptors orders descriptors by Order ascending, ties broken by ID
// so the display sequence is deterministic even when Order values collide.
func SortDescriptors(descriptors []ModuleDescriptor) {
	sort.SliceStable(descriptors, func(i, j int) bool {
		if descriptors[i].Order != descriptors[j].Order {
			return descriptors[i].Order < descriptors[j].Order
		}
		return descriptors[i].ID < descriptors[j].ID
	})
}

// CloneDescriptors returns a copy the caller may mutate freely.
func CloneDescriptors(descriptors []ModuleDescriptor) []ModuleDescriptor {
	out := make([]ModuleDescriptor, len(descriptors))
	copy(out, descriptors)
	return out
}
