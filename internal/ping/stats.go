package ping

import (
	"math"

	"netspeed/internal/models"
)

// Summarize aggregates ping samples into low/high/average, jitter and loss.
// Jitter is the spread between the slowest and the fastest reply.
// Latency fields stay absent when no sample got a reply.
func Summarize(target string, samples []models.PingResult) models.PingStats {
	stats := models.PingStats{
		Target: target,
		Sent:   len(samples),
	}
	if len(samples) == 0 {
		return stats
	}

	low, high, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, s := range samples {
		if !s.Success {
			continue
		}
		stats.Samples = append(stats.Samples, s.RTT)
		low = math.Min(low, s.RTT)
		high = math.Max(high, s.RTT)
		sum += s.RTT
	}
	stats.Received = len(stats.Samples)

	lost := stats.Sent - stats.Received
	stats.Loss = models.Some(float64(lost) / float64(stats.Sent) * 100)

	if stats.Received == 0 {
		return stats
	}

	// float rounding must not push the mean outside [low, high]
	avg := math.Min(math.Max(sum/float64(stats.Received), low), high)

	stats.Low = models.Some(low)
	stats.High = models.Some(high)
	stats.Avg = models.Some(avg)
	stats.Jitter = models.Some(high - low)
	return stats
}
