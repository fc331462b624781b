package snapcache

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

// bundleSnapshotVersion invalidates stored snapshots when the bundle
// encoding changes shape.
const bundleSnapshotVersion = 1

// snapshotKey namespaces bundle entries by niche.
func snapshotKey(niche string) string {
	return "bundle:" + niche
}

// StoreBundle saves a bundle snapshot under its niche. A disabled store
// accepts and drops the write.
func StoreBundle(mgr contract.SnapshotManager, bundle *schema.AnalysisBundle) error {
	store := mgr.GetSnapshotStore()
	if store == nil {
		return nil
	}

	data, err := contract.EncodeBundle(bundle)
	if err != nil {
		return fmt.Errorf("failed to encode bundle for %q: %w", bundle.Niche, err)
	}
	return store.Set(snapshotKey(bundle.Niche), data, bundleSnapshotVersion, bundle.GeneratedAt.Unix())
}

// LoadCachedBundle returns the stored bundle for a niche, or a miss when no
// usable snapshot exists. Version mismatches count as misses so stale
// encodings are refetched rather than decoded.
func LoadCachedBundle(mgr contract.SnapshotManager, niche string) (*schema.AnalysisBundle, bool, error) {
	store := mgr.GetSnapshotStore()
	if store == nil {
		return nil, false, nil
	}

	data, version, _, err := store.Get(snapshotKey(niche))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read snapshot for %q: %w", niche, err)
	}
	if version != bundleSnapshotVersion {
		return nil, false, nil
	}

	bundle, err := contract.DecodeBundle(data)
	if err != nil {
		// A corrupt snapshot is a miss, not a fatal condition.
		contract.LogWarn("Discarding unreadable bundle snapshot", err)
		return nil, false, nil
	}
	return bundle, true, nil
}
