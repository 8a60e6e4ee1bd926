package models

import "time"

// PingResult represents a single ping measurement
type PingResult struct {
	Timestamp    time.Time `json:"timestamp"`
	Target       string    `json:"target"`
	Success      bool      `json:"success"`
	RTT          float64   `json:"rtt_ms"` // milliseconds
	ErrorMessage string    `json:"error_message"`
}

// PingStats aggregates repeated ping samples against one target
type PingStats struct {
	Target   string      `json:"target"`
	Low      Measurement `json:"low_ms"`
	High     Measurement `json:"high_ms"`
	Avg      Measurement `json:"avg_ms"`
	Jitter   Measurement `json:"jitter_ms"` // max-min spread
	Loss     Measurement `json:"packet_loss"`
	Samples  []float64   `json:"samples_ms"`
	Sent     int         `json:"sent"`
	Received int         `json:"received"`
}
