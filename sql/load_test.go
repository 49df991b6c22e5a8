package sql

import (
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Initialize database extensions", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		var exists bool
		err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'pgcrypto');").Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "pgcrypto extension should be created")
	})

	t.Run("Initialize database extensions is idempotent", func(t *testing.T) {
		assert.NoError(t, Init(db.Instance))
		assert.NoError(t, Init(db.Instance))
	})
}

func TestLoadSnapshotsSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	functionsExist := func(t *testing.T) {
		for _, funcName := range SnapshotsFunctions {
			var exists bool
			err := db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	}

	t.Run("Load snapshots SQL functions", func(t *testing.T) {
		err := LoadSnapshotsSql(db.Instance, false)
		assert.NoError(t, err)
		functionsExist(t)
	})

	t.Run("Load snapshots SQL is idempotent without force", func(t *testing.T) {
		err := LoadSnapshotsSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load snapshots SQL with force reloads", func(t *testing.T) {
		err := LoadSnapshotsSql(db.Instance, true)
		assert.NoError(t, err)
		functionsExist(t)
	})

	t.Run("Init function creates the table", func(t *testing.T) {
		_, err := db.Instance.Exec(`SELECT init_snapshots();`)
		require.NoError(t, err)

		var exists bool
		err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = 'snapshots');").Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestLoadAllSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	assert.NoError(t, LoadAllSql(db.Instance, true))
	assert.NoError(t, LoadAllSql(db.Instance, false))
}
