package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed snapshots.sql
var snapshotsSQL string

// Function lists for verification
var SnapshotsFunctions = []string{
	"init_snapshots",
	"insert_snapshot",
	"select_snapshot",
	"select_latest_snapshot",
	"select_all_snapshots",
	"delete_snapshot",
	"prune_snapshots",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadSnapshotsSql loads snapshot-related SQL functions
func LoadSnapshotsSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, SnapshotsFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing snapshots functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(snapshotsSQL)
	if err != nil {
		return fmt.Errorf("error executing snapshots SQL: %w", err)
	}

	exist, err := checkFunctions(db, SnapshotsFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL snapshots functions loaded successfully")
	return nil
}

// LoadAllSql initializes extensions and loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := Init(db); err != nil {
		return err
	}
	return LoadSnapshotsSql(db, force)
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
