// Package types provides shared data structures for the dashboard engine.
//
// This package defines core types used across all engine components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - ModuleDescriptor: Persisted record for one feature module
//   - Entitlement: Snapshot of the user's purchase state
//   - FeatureDefinition: Capability handle resolved from a dispatch key
//   - PresentationItem: One entry of the composed dashboard sequence
//
// State Management:
//   - GateState: Unlock state machine position of a gated module
//   - ItemKind: Module vs ad-slot variants of a presentation item
package types
