package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"netspeed/internal/models"
)

// WriteLatencyChart renders the run's ping samples as a PNG bar chart in
// outputDir and returns the file path. Nothing is written without samples.
func WriteLatencyChart(outputDir string, r *models.Report) (string, error) {
	if len(r.Ping.Samples) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create chart directory: %w", err)
	}

	values := make([]chart.Value, 0, len(r.Ping.Samples))
	high := 0.0
	for i, rtt := range r.Ping.Samples {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("#%d", i+1),
			Value: rtt,
		})
		high = max(high, rtt)
	}

	graph := chart.BarChart{
		Title: fmt.Sprintf("Ping Latency - %s (jitter %s ms, loss %s%%)",
			r.Ping.Target, r.Ping.Jitter.Format(), r.PacketLoss.Format()),
		TitleStyle: chart.Style{
			FontSize: 14,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    800,
		Height:   400,
		BarWidth: 40,
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: high*1.1 + 1,
			},
		},
		Bars: values,
	}

	filename := filepath.Join(outputDir, chartFilename(r.Ping.Target, r.Timestamp))
	if err := writeFile(filename, func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	}); err != nil {
		return "", fmt.Errorf("render latency chart: %w", err)
	}
	return filename, nil
}

// writeFile creates filename and fills it with render. The file is removed
// again when rendering or closing fails.
func writeFile(filename string, render func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	err = render(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filename)
		return err
	}
	return nil
}
