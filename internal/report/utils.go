package report

import (
	"fmt"
	"strings"
	"time"
)

// sanitizeFilename replaces dots and special characters for safe filenames
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		".", "_",
		":", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	)
	return replacer.Replace(s)
}

// chartFilename names the latency chart of a run against host
func chartFilename(host string, ts time.Time) string {
	if host == "" {
		host = "unknown"
	}
	return fmt.Sprintf("latency_%s_%s.png", sanitizeFilename(host), ts.Format("2006-01-02_15-04-05"))
}
