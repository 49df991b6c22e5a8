package helper

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfiguration(t *testing.T) {
	t.Run("Defaults without environment", func(t *testing.T) {
		t.Setenv("LOREGRAPH_GRAPH_FILE", "")
		t.Setenv("LOREGRAPH_MAX_PATH_DEPTH", "")
		t.Setenv("LOREGRAPH_LOG_LEVEL", "")
		t.Setenv("LOREGRAPH_DEFAULT_ENTITY_TYPE", "")

		config, err := NewConfiguration()
		require.NoError(t, err)
		assert.Equal(t, "", config.GraphFile, "Expected in-memory default")
		assert.Equal(t, 3, config.MaxPathDepth)
		assert.Equal(t, "CONCEPT", config.DefaultEntityType)
		assert.Equal(t, slog.LevelInfo, config.LogLevel)
	})

	t.Run("Values from environment", func(t *testing.T) {
		t.Setenv("LOREGRAPH_GRAPH_FILE", "/tmp/lore.json")
		t.Setenv("LOREGRAPH_MAX_PATH_DEPTH", "5")
		t.Setenv("LOREGRAPH_LOG_LEVEL", "debug")
		t.Setenv("LOREGRAPH_DEFAULT_ENTITY_TYPE", "npc")

		config, err := NewConfiguration()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/lore.json", config.GraphFile)
		assert.Equal(t, 5, config.MaxPathDepth)
		assert.Equal(t, slog.LevelDebug, config.LogLevel)
		assert.Equal(t, "NPC", config.DefaultEntityType)
	})

	t.Run("Invalid depth is rejected", func(t *testing.T) {
		t.Setenv("LOREGRAPH_MAX_PATH_DEPTH", "deep")

		_, err := NewConfiguration()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "LOREGRAPH_MAX_PATH_DEPTH")
	})
}

func TestNewDatabaseConfiguration(t *testing.T) {
	t.Run("Missing host is rejected", func(t *testing.T) {
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("DB_DATABASE", "lore")
		t.Setenv("DB_USERNAME", "gm")

		_, err := NewDatabaseConfiguration()
		assert.Error(t, err)
	})

	t.Run("Schema and ssl mode get defaults", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5433")
		t.Setenv("DB_SCHEMA", "")
		t.Setenv("DB_SSLMODE", "")

		config, err := NewDatabaseConfiguration()
		require.NoError(t, err)
		assert.Equal(t, "public", config.Schema)
		assert.Equal(t, "disable", config.SSLMode)
		assert.Contains(t, config.DSN(), "port=5433")
	})
}
