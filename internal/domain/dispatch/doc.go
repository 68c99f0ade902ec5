// Package dispatch resolves persisted dispatch keys to concrete features.
//
// The registry is an explicit key-to-factory table populated at startup,
// with a designated Unknown fallback. No reflection, no string-keyed type
// lookup, no I/O: resolution is a deterministic, side-effect-free map read.
//
// Components:
//   - Registry: Dispatch key to feature factory mapping
//   - NewDefaultRegistry: The feature set shipped by this version
//
// Version Skew:
//   - Keys persisted by other app versions resolve to the Unknown
//     placeholder rather than failing, so stored configuration stays
//     forward and backward compatible.
package dispatch
