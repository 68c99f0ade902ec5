package storage

import "errors"

// ErrNotFound is returned when no blob has been stored under a key.
var ErrNotFound = errors.New("blob not found")

// Blob persists opaque byte blobs under stable keys. It is the preference
// store abstraction the module store writes its configuration through.
//
// Write must be atomic with respect to the previous stored value: a reader
// observes either the old blob or the new one, never a partial write.
type Blob interface {
	// Read returns the blob stored under key, or ErrNotFound.
	Read(key string) ([]byte, error)
	// Write durably replaces the blob stored under key.
	Write(key string, data []byte) error
}
