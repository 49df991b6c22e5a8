package database

import (
	"context"
	"log"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/siherrmann/loregraph/helper"
	"github.com/stretchr/testify/require"
)

var dbPort string

func TestMain(m *testing.M) {
	teardown, port, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}
	dbPort = port

	code := m.Run()

	if err := teardown(context.Background()); err != nil {
		log.Fatalf("error tearing down postgres container: %v", err)
	}
	os.Exit(code)
}

func initDB(t *testing.T) *helper.Database {
	helper.SetTestDatabaseConfigEnvs(t, dbPort)
	dbConfig, err := helper.NewDatabaseConfiguration()
	require.NoError(t, err, "failed to create database configuration")
	database := helper.NewTestDatabase(dbConfig)
	t.Cleanup(func() { database.Close() })

	return database
}
