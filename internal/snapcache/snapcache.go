// Package snapcache stores collected input bundles so repeated analyses of
// the same niche can run without re-fetching collaborator data.
package snapcache

import (
	"sync"

	"github.com/seralva/gapscope/internal/contract"
)

// SnapshotStoreManager manages the snapshot store instance.
type SnapshotStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	snapshots    contract.SnapshotStore
}

var _ contract.SnapshotManager = &SnapshotStoreManager{} // Compile-time check

// GetSnapshotStore returns the snapshot SnapshotStore.
func (mgr *SnapshotStoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshots
}
