package database

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// NewSQLite opens the embedded database the project originally shipped with.
// Still used for local development and as a zero-dependency fallback.
func NewSQLite(path string) *sql.DB {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("failed to create sqlite directory: %v", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Fatalf("failed to open sqlite: %v", err)
	}
	// database/sql pooling does not mix well with sqlite writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping sqlite: %v", err)
	}
	return db
}
