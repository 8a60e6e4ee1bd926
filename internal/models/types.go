package models

import (
	"context"
	"time"
)

// Prober performs the three measurement categories of a run.
// A result returned together with an error is discarded by callers.
type Prober interface {
	MeasureSpeed(ctx context.Context) (SpeedResult, error)
	MeasurePing(ctx context.Context, target string) (PingStats, error)
	LookupInfo(ctx context.Context) (NetworkInfo, error)
}

// Pinger interface defines ping execution operations
type Pinger interface {
	Ping(ctx context.Context, target string, timeout time.Duration) (PingResult, error)
}

// Database interface defines operations for result history
type Database interface {
	SaveReport(report *Report) error
	GetRecent(limit int) ([]HistoryEntry, error)
	PruneOlderThan(days int) (int64, error)
	Close() error
}
