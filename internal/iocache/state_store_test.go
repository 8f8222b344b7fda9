package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/spendchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStore_NoneBackend(t *testing.T) {
	store, err := NewStateStore(stateTable, schema.NoneBackend, "")
	require.NoError(t, err)

	_, _, _, err = store.Get("key")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, store.Set("key", []byte("value"), 1, 123))
	_, _, _, err = store.Get("key")
	assert.ErrorIs(t, err, sql.ErrNoRows, "none backend never stores")

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)
	assert.NoError(t, store.Close())
}

func TestStateStore_SQLite(t *testing.T) {
	store, err := NewStateStore(stateTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	now := time.Now().Unix()
	require.NoError(t, store.Set("k1", []byte(`{"version":1}`), 1, now-60))
	require.NoError(t, store.Set("k2", []byte(`{}`), 1, now))

	value, version, ts, err := store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1}`), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, now-60, ts)

	// Upsert replaces in place
	require.NoError(t, store.Set("k1", []byte("new"), 2, now))
	value, version, _, err = store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, 2, version)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, now, status.LastEntryTime.Unix())
	assert.Equal(t, now, status.OldestEntryTime.Unix())
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestStateStore_InvalidTableName(t *testing.T) {
	_, err := NewStateStore("bad; DROP TABLE x", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err)
}

func TestStateStore_UnsupportedBackend(t *testing.T) {
	_, err := NewStateStore(stateTable, schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{"simple", "chart_state", false},
		{"leading underscore", "_state", false},
		{"digits", "state_2", false},
		{"empty", "", true},
		{"leading digit", "2state", true},
		{"space", "chart state", true},
		{"quote", `state"`, true},
		{"semicolon", "state;", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`runs`", quoteTableName("runs", schema.MySQLBackend))
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.PostgreSQLBackend))
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.SQLiteBackend))
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "$3", placeholder(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?", placeholder(schema.MySQLBackend, 3))
	assert.Equal(t, "?", placeholder(schema.SQLiteBackend, 1))
}
