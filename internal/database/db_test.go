package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"netspeed/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InitSchema(); err != nil {
		t.Fatalf("InitSchema() error: %v", err)
	}
	return db
}

func TestNewUnopenablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "history.db")
	db, err := New(path)
	if err == nil {
		db.Close()
		t.Fatal("New() succeeded for a path in a missing directory")
	}
}

func TestSaveAndGetRecent(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC().Truncate(time.Second)

	full := &models.Report{
		ID:         "run-new",
		Timestamp:  now,
		Server:     models.ServerInfo{Host: "speed.example.net", Name: "Helsinki", Latency: models.Some(4.2)},
		Download:   models.Some(50.2),
		Upload:     models.Some(10.1),
		DownloadMB: models.Some(62.75),
		Ping: models.PingStats{
			Low: models.Some(14), High: models.Some(17), Avg: models.Some(15.3), Jitter: models.Some(3),
			Sent: 4, Received: 4,
		},
		PacketLoss: models.Some(0),
		Info:       models.NetworkInfo{Provider: "Example ISP"},
	}
	empty := &models.Report{
		ID:        "run-old",
		Timestamp: now.Add(-time.Hour),
		Warnings: []models.Warning{
			{Probe: models.ProbeSpeed, Err: models.NewProbeError(models.ProbeSpeed, models.ErrProbeTimeout, errors.New("deadline"))},
		},
	}

	for _, r := range []*models.Report{empty, full} {
		if err := db.SaveReport(r); err != nil {
			t.Fatalf("SaveReport(%s) error: %v", r.ID, err)
		}
	}

	entries, err := db.GetRecent(10)
	if err != nil {
		t.Fatalf("GetRecent() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	got := entries[0]
	if got.ID != "run-new" {
		t.Fatalf("newest entry = %s, want run-new", got.ID)
	}
	if got.ServerHost != "speed.example.net" || got.ServerName != "Helsinki" || got.Provider != "Example ISP" {
		t.Errorf("unexpected descriptors %+v", got)
	}
	if got.Download != models.Some(50.2) || got.Upload != models.Some(10.1) {
		t.Errorf("speeds = %+v / %+v", got.Download, got.Upload)
	}
	if got.PingAvg != models.Some(15.3) || got.Jitter != models.Some(3) || got.PacketLoss != models.Some(0) {
		t.Errorf("ping = %+v jitter = %+v loss = %+v", got.PingAvg, got.Jitter, got.PacketLoss)
	}
	if !got.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, now)
	}

	old := entries[1]
	if old.Download.Valid || old.PingAvg.Valid || old.PacketLoss.Valid {
		t.Errorf("absent measurements must round-trip as absent: %+v", old)
	}
	if old.ServerHost != "" || old.Provider != "" {
		t.Errorf("empty descriptors must stay empty: %+v", old)
	}

	limited, err := db.GetRecent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].ID != "run-new" {
		t.Errorf("GetRecent(1) = %+v", limited)
	}
}

func TestSaveReportDuplicateID(t *testing.T) {
	db := newTestDB(t)
	r := &models.Report{ID: "same", Timestamp: time.Now()}
	if err := db.SaveReport(r); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveReport(r); err == nil {
		t.Error("expected primary key violation")
	}
}

func TestPruneOlderThan(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()

	for i, age := range []time.Duration{0, 24 * time.Hour, 100 * 24 * time.Hour, 400 * 24 * time.Hour} {
		r := &models.Report{ID: string(rune('a' + i)), Timestamp: now.Add(-age)}
		if err := db.SaveReport(r); err != nil {
			t.Fatal(err)
		}
	}

	n, err := db.PruneOlderThan(0)
	if err != nil || n != 0 {
		t.Fatalf("PruneOlderThan(0) = %d, %v; want no-op", n, err)
	}

	n, err = db.PruneOlderThan(90)
	if err != nil {
		t.Fatalf("PruneOlderThan(90) error: %v", err)
	}
	if n != 2 {
		t.Errorf("pruned %d rows, want 2", n)
	}

	entries, err := db.GetRecent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("%d entries left, want 2", len(entries))
	}
}
