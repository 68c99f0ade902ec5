// Package compose produces the ordered presentation sequence for the
// dashboard: enabled modules in display order, interleaved with ad slots
// for users holding no qualifying entitlement.
//
// Components:
//   - Composer: Builds and atomically publishes presentation snapshots,
//     recomposing on module-store or entitlement change
//   - Unlocker: Session-scoped unlock state machine for gated features
//   - Policy: Configurable ad cadence for the list and grid layouts
//
// Composition is side-effect-free. Gated modules are never removed from
// the sequence; the rendering layer decides at interaction time whether to
// proceed, request an ad unlock, or prompt purchase.
package compose
