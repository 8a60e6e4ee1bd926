package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"netspeed/internal/models"
)

// DB wraps sql.DB with additional methods
type DB struct {
	*sql.DB
}

var _ models.Database = (*DB)(nil)

// New opens the history database at path in WAL mode
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	return &DB{db}, nil
}

// InitSchema creates all necessary tables
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS speed_results (
        id TEXT PRIMARY KEY,
        timestamp DATETIME NOT NULL,
        server_host TEXT,
        server_name TEXT,
        server_country TEXT,
        server_latency_ms REAL,
        download_mbps REAL,
        upload_mbps REAL,
        download_mb REAL,
        upload_mb REAL,
        ping_low_ms REAL,
        ping_high_ms REAL,
        ping_avg_ms REAL,
        jitter_ms REAL,
        packet_loss REAL,
        pings_sent INTEGER,
        pings_received INTEGER,
        provider TEXT,
        location TEXT,
        external_ip TEXT,
        internal_ip TEXT,
        device TEXT,
        warnings TEXT,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE INDEX IF NOT EXISTS idx_speed_results_timestamp ON speed_results(timestamp);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}
