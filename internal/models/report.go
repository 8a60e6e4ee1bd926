package models

import "time"

// Probe names used in warnings and logs
const (
	ProbeSpeed = "speed"
	ProbePing  = "ping"
	ProbeInfo  = "info"
)

// ServerInfo describes the speed test server a run was measured against
type ServerInfo struct {
	Host    string      `json:"host"`
	Name    string      `json:"name"`
	Country string      `json:"country"`
	Sponsor string      `json:"sponsor"`
	Latency Measurement `json:"latency_ms"`
}

// SpeedResult is the outcome of the speed probe
type SpeedResult struct {
	Server     ServerInfo  `json:"server"`
	Download   Measurement `json:"download_mbps"`
	Upload     Measurement `json:"upload_mbps"`
	DownloadMB Measurement `json:"download_mb"`
	UploadMB   Measurement `json:"upload_mb"`
	ISP        string      `json:"isp"`
	Tests      int         `json:"tests"`
}

// NetworkInfo holds device and network descriptors; empty strings are unknown
type NetworkInfo struct {
	Provider   string `json:"provider"`
	Location   string `json:"location"`
	ExternalIP string `json:"external_ip"`
	InternalIP string `json:"internal_ip"`
	Device     string `json:"device"`
}

// Warning records a probe that failed during a run
type Warning struct {
	Probe string `json:"probe"`
	Err   error  `json:"-"`
}

func (w Warning) String() string {
	if w.Err == nil {
		return w.Probe + " probe failed"
	}
	return w.Err.Error()
}

// Report is the result record of one run
type Report struct {
	ID         string      `json:"id"`
	Timestamp  time.Time   `json:"timestamp"`
	Server     ServerInfo  `json:"server"`
	Download   Measurement `json:"download_mbps"`
	Upload     Measurement `json:"upload_mbps"`
	DownloadMB Measurement `json:"download_mb"`
	UploadMB   Measurement `json:"upload_mb"`
	Ping       PingStats   `json:"ping"`
	PacketLoss Measurement `json:"packet_loss"`
	Info       NetworkInfo `json:"info"`
	Warnings   []Warning   `json:"-"`
}

// HistoryEntry is a stored run read back from the database
type HistoryEntry struct {
	ID         string      `json:"id"`
	Timestamp  time.Time   `json:"timestamp"`
	ServerHost string      `json:"server_host"`
	ServerName string      `json:"server_name"`
	Download   Measurement `json:"download_mbps"`
	Upload     Measurement `json:"upload_mbps"`
	PingAvg    Measurement `json:"ping_avg_ms"`
	Jitter     Measurement `json:"jitter_ms"`
	PacketLoss Measurement `json:"packet_loss"`
	Provider   string      `json:"provider"`
}
