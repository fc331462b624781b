// Package contract provides interfaces and shared utilities for the gapscope CLI's internal architecture.
package contract

import "github.com/seralva/gapscope/schema"

// SnapshotManager defines the interface for managing snapshot stores.
// This allows the snapshot layer to be mocked for testing.
type SnapshotManager interface {
	GetSnapshotStore() SnapshotStore
}

// SnapshotStore defines the interface for input-bundle snapshot storage.
// This allows mocking the store for testing.
type SnapshotStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.SnapshotStatus, error)
	Close() error
}
