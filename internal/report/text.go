package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"netspeed/internal/models"
)

const dateLayout = "January 02, 2006 @ 03:04 PM"

// Render writes one warning line per failed probe followed by a boxed
// table with one line per metric. Absent values print as N/A.
func Render(w io.Writer, r *models.Report) error {
	bw := bufio.NewWriter(w)

	for _, warn := range r.Warnings {
		fmt.Fprintf(bw, "Warning: %s\n", warn)
	}

	sections := [][]string{
		{
			"Date: " + r.Timestamp.Format(dateLayout),
			fmt.Sprintf("Server: %s (Latency: %s)", orNA(r.Server.Host), r.Server.Latency.WithUnit(" ms")),
			"Server Location: " + serverLocation(r.Server),
		},
		{
			"Connection Type: " + orNA(r.Info.Provider),
			"Device: " + orNA(r.Info.Device),
			"Internal IP: " + orNA(r.Info.InternalIP),
			"External IP: " + orNA(r.Info.ExternalIP),
			"Location: " + orNA(r.Info.Location),
		},
		{
			"Download: " + throughput(r.Download, r.DownloadMB),
			"Upload: " + throughput(r.Upload, r.UploadMB),
		},
		{
			"Packet Loss: " + r.PacketLoss.WithUnit("%"),
			"Ping: " + latency(r.Ping),
		},
	}

	width := 0
	for _, section := range sections {
		for _, line := range section {
			width = max(width, utf8.RuneCountInString(line))
		}
	}

	rule := "+" + strings.Repeat("-", width+2) + "+\n"
	bw.WriteString(rule)
	for _, section := range sections {
		for _, line := range section {
			fmt.Fprintf(bw, "| %s |\n", pad(line, width))
		}
		bw.WriteString(rule)
	}

	return bw.Flush()
}

// Summary returns the whole report on a single line
func Summary(r *models.Report) string {
	return fmt.Sprintf("Server: %s, Download: %s, Upload: %s, Ping: %s, Packet Loss: %s, Connection Type: %s",
		orNA(r.Server.Host),
		r.Download.WithUnit(" Mbps"),
		r.Upload.WithUnit(" Mbps"),
		latency(r.Ping),
		r.PacketLoss.WithUnit("%"),
		orNA(r.Info.Provider),
	)
}

func throughput(rate, volume models.Measurement) string {
	if !rate.Valid {
		return models.NotAvailable
	}
	return fmt.Sprintf("%s (Data Used: %s)", rate.WithUnit(" Mbps"), volume.WithUnit(" MB"))
}

func latency(p models.PingStats) string {
	return fmt.Sprintf("%s (Low: %s, High: %s, Jitter: %s)",
		p.Avg.WithUnit(" ms"),
		p.Low.WithUnit(" ms"),
		p.High.WithUnit(" ms"),
		p.Jitter.WithUnit(" ms"),
	)
}

func serverLocation(s models.ServerInfo) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{s.Name, s.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return models.NotAvailable
	}
	return strings.Join(parts, ", ")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.NotAvailable
	}
	return s
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
