package snapcache

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralva/gapscope/schema"
)

func TestSnapshotLifecycle(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "snapshots.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores(schema.SQLiteBackend, dbPath)
		assert.NoError(t, err, "Failed to initialize snapshot store")
		assert.NotNil(t, Manager, "Manager should not be nil")
		assert.NotNil(t, Manager.GetSnapshotStore(), "Snapshot store should not be nil")

		CloseStores()
	})

	t.Run("idempotent setup", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "snapshots.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Multiple initializations should be safe (sync.Once)
		assert.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		assert.NoError(t, InitStores(schema.SQLiteBackend, dbPath))

		// Multiple closes should be safe (sync.Once)
		CloseStores()
		CloseStores()
	})

	t.Run("disabled setup", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores("", "")
		assert.NoError(t, err)
		assert.Nil(t, Manager.GetSnapshotStore(), "Disabled setup leaves no store")
		CloseStores()
	})
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := NewSnapshotStore(snapshotTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	ts := time.Now().Unix()
	require.NoError(t, store.Set("k1", []byte("payload"), 1, ts))

	value, version, gotTS, err := store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, ts, gotTS)

	// Same key overwrites in place.
	require.NoError(t, store.Set("k1", []byte("updated"), 2, ts+10))
	value, version, _, err = store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("updated"), value)
	assert.Equal(t, 2, version)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalEntries)
}

func TestSnapshotStoreNoneBackend(t *testing.T) {
	store, err := NewSnapshotStore(snapshotTable, schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.NoError(t, store.Set("k", []byte("v"), 1, 0))
	_, _, _, err = store.Get("k")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestSnapshotStoreBadInputs(t *testing.T) {
	_, err := NewSnapshotStore("bad;name", schema.SQLiteBackend, "")
	assert.Error(t, err)

	_, err = NewSnapshotStore(snapshotTable, schema.DatabaseBackend("cloud"), "")
	assert.Error(t, err)
}

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("bundle_snapshots"))
	assert.NoError(t, validateTableName("_private"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("1starts_with_digit"))
	assert.Error(t, validateTableName("drop table;--"))
}

func testAnalysisBundle() *schema.AnalysisBundle {
	return &schema.AnalysisBundle{
		Niche:       "mechanical keyboards",
		GeneratedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Topics:      []schema.TopicSignals{{Topic: "switch lubing", CommentCount: 10}},
	}
}

func TestBundleCacheRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := NewSnapshotStore(snapshotTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	mgr := &SnapshotStoreManager{snapshots: store}
	bundle := testAnalysisBundle()

	_, hit, err := LoadCachedBundle(mgr, bundle.Niche)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, StoreBundle(mgr, bundle))

	cached, hit, err := LoadCachedBundle(mgr, bundle.Niche)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, bundle.Niche, cached.Niche)
	assert.Equal(t, bundle.GeneratedAt, cached.GeneratedAt)
	assert.Len(t, cached.Topics, 1)
}

func TestBundleCacheVersionMismatch(t *testing.T) {
	store := &MockSnapshotStore{}
	store.On("Get", snapshotKey("niche")).Return([]byte("{}"), bundleSnapshotVersion+1, int64(0), nil)

	mgr := &MockSnapshotManager{}
	mgr.On("GetSnapshotStore").Return(store)

	_, hit, err := LoadCachedBundle(mgr, "niche")
	require.NoError(t, err)
	assert.False(t, hit, "A stale encoding must read as a miss")
	store.AssertExpectations(t)
}

func TestBundleCacheDisabledStore(t *testing.T) {
	mgr := &MockSnapshotManager{}
	mgr.On("GetSnapshotStore").Return(nil)

	assert.NoError(t, StoreBundle(mgr, testAnalysisBundle()))
	_, hit, err := LoadCachedBundle(mgr, "anything")
	require.NoError(t, err)
	assert.False(t, hit)
}
