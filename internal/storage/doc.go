// Package storage provides the keyed blob store backing module
// configuration persistence.
//
// Components:
//   - Blob: Storage interface with atomic replace semantics
//   - FileStore: Write-new-then-swap files under a private directory
//   - MemoryStore: In-memory backend for tests and ephemeral mode
//
// Storage Structure:
//   - One file per key: {dir}/{key}.json
//   - Writes land in a temp sibling and are renamed into place
package storage
