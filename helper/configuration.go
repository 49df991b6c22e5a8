package helper

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Configuration is the runtime configuration of a loregraph instance.
type Configuration struct {
	// GraphFile is the snapshot file loaded on start and written by Save.
	// Empty means purely in-memory.
	GraphFile string
	// PatternFile optionally overrides the default extraction patterns.
	PatternFile string
	// DefaultEntityType is used for names only referenced by relationships
	// during ingestion.
	DefaultEntityType string
	MaxPathDepth      int
	LogLevel          slog.Level
}

// DefaultConfiguration returns an in-memory configuration.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		DefaultEntityType: "CONCEPT",
		MaxPathDepth:      3,
		LogLevel:          slog.LevelInfo,
	}
}

// NewConfiguration reads LOREGRAPH_* environment variables on top of the
// defaults, loading an optional .env file first.
func NewConfiguration() (*Configuration, error) {
	_ = godotenv.Load()

	config := DefaultConfiguration()
	config.GraphFile = os.Getenv("LOREGRAPH_GRAPH_FILE")
	config.PatternFile = os.Getenv("LOREGRAPH_PATTERN_FILE")

	if v := os.Getenv("LOREGRAPH_DEFAULT_ENTITY_TYPE"); v != "" {
		config.DefaultEntityType = strings.ToUpper(v)
	}

	if v := os.Getenv("LOREGRAPH_MAX_PATH_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil || depth < 0 {
			return nil, NewError("configuration", fmt.Errorf("invalid LOREGRAPH_MAX_PATH_DEPTH %q", v))
		}
		config.MaxPathDepth = depth
	}

	if v := os.Getenv("LOREGRAPH_LOG_LEVEL"); v != "" {
		if err := config.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, NewError("configuration", fmt.Errorf("invalid LOREGRAPH_LOG_LEVEL %q", v))
		}
	}

	return config, nil
}
