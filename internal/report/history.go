package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"netspeed/internal/models"
)

// RenderHistory prints stored runs as a table, newest first as given
func RenderHistory(w io.Writer, entries []models.HistoryEntry, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No stored speed test results.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tSERVER\tDOWNLOAD\tUPLOAD\tPING\tJITTER\tLOSS\tPROVIDER")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			humanize.RelTime(e.Timestamp, now, "ago", "from now"),
			orNA(e.ServerHost),
			e.Download.WithUnit(" Mbps"),
			e.Upload.WithUnit(" Mbps"),
			e.PingAvg.WithUnit(" ms"),
			e.Jitter.WithUnit(" ms"),
			e.PacketLoss.WithUnit("%"),
			orNA(e.Provider),
		)
	}
	return tw.Flush()
}
