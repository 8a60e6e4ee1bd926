package database

import (
	"time"
)

// PruneOlderThan deletes runs older than days and returns how many were
// removed. Zero days keeps everything.
func (db *DB) PruneOlderThan(days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := db.Exec(`DELETE FROM speed_results WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	// Vacuum to reclaim space (run occasionally)
	if n > 0 && time.Now().Day() == 1 {
		if _, err := db.Exec("VACUUM"); err != nil {
			return n, err
		}
	}

	return n, nil
}
