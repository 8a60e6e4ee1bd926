package database

import (
	"database/sql"
	"strings"

	"netspeed/internal/models"
)

// SaveReport saves a run to the database; absent measurements become NULL
func (db *DB) SaveReport(r *models.Report) error {
	query := `
        INSERT INTO speed_results (
            id, timestamp, server_host, server_name, server_country, server_latency_ms,
            download_mbps, upload_mbps, download_mb, upload_mb,
            ping_low_ms, ping_high_ms, ping_avg_ms, jitter_ms, packet_loss,
            pings_sent, pings_received,
            provider, location, external_ip, internal_ip, device, warnings
        )
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	warnings := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		warnings = append(warnings, w.String())
	}

	_, err := db.Exec(query,
		r.ID,
		r.Timestamp.UTC(),
		nullString(r.Server.Host),
		nullString(r.Server.Name),
		nullString(r.Server.Country),
		nullFloat(r.Server.Latency),
		nullFloat(r.Download),
		nullFloat(r.Upload),
		nullFloat(r.DownloadMB),
		nullFloat(r.UploadMB),
		nullFloat(r.Ping.Low),
		nullFloat(r.Ping.High),
		nullFloat(r.Ping.Avg),
		nullFloat(r.Ping.Jitter),
		nullFloat(r.PacketLoss),
		r.Ping.Sent,
		r.Ping.Received,
		nullString(r.Info.Provider),
		nullString(r.Info.Location),
		nullString(r.Info.ExternalIP),
		nullString(r.Info.InternalIP),
		nullString(r.Info.Device),
		nullString(strings.Join(warnings, "\n")),
	)
	return err
}

// GetRecent retrieves the most recent runs, newest first
func (db *DB) GetRecent(limit int) ([]models.HistoryEntry, error) {
	query := `
        SELECT id, timestamp, server_host, server_name,
               download_mbps, upload_mbps, ping_avg_ms, jitter_ms, packet_loss, provider
        FROM speed_results
        ORDER BY timestamp DESC
        LIMIT ?
    `

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var host, name, provider sql.NullString
		var download, upload, ping, jitter, loss sql.NullFloat64

		if err := rows.Scan(&e.ID, &e.Timestamp, &host, &name,
			&download, &upload, &ping, &jitter, &loss, &provider); err != nil {
			return nil, err
		}

		e.ServerHost = host.String
		e.ServerName = name.String
		e.Provider = provider.String
		e.Download = measurement(download)
		e.Upload = measurement(upload)
		e.PingAvg = measurement(ping)
		e.Jitter = measurement(jitter)
		e.PacketLoss = measurement(loss)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func nullFloat(m models.Measurement) sql.NullFloat64 {
	return sql.NullFloat64{Float64: m.Value, Valid: m.Valid}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func measurement(n sql.NullFloat64) models.Measurement {
	if !n.Valid {
		return models.None()
	}
	return models.Some(n.Float64)
}
