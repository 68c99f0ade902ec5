// Package module provides the persisted module configuration store.
//
// The Store is the sole owner of on-device module configuration: the
// ordered descriptor list with per-user enable flags. All mutations go
// through one mutex and one write path.
//
// Components:
//   - Store: Load/Toggle/Reorder with immediate persistence
//   - DefaultDescriptors: Fixed built-in set seeded on first run
//   - LoadSeedManifest: Optional YAML display-metadata overrides
//
// Failure Semantics:
//   - Corrupt or missing persisted data falls back to the seeded defaults
//   - Failed writes keep in-memory state authoritative and retry on the
//     next mutation or foreground event; user changes are never rolled back
//
// Storage Structure:
//   - Single keyed JSON blob under the fixed key "modules"
//   - No version field; evolution relies on missing-field tolerance
package module
