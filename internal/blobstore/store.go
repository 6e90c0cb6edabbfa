// Package blobstore defines the string-keyed blob store port consumed by the
// persistence layer, together with its in-process backends.
//
// A store offers no transactions and no atomic multi-key writes; callers that
// read-modify-write across keys rely on the single-writer assumption.
package blobstore

// Store is a synchronous key-to-string storage medium.
//
// Backends with real I/O report failures through the error return; the
// persistence layer treats any read failure as absence and any write failure
// as loggable-but-not-fatal, so callers above it never see these errors.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes the key if present.
	Remove(key string) error
	// Clear removes every key.
	Clear() error
}
