package ping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"netspeed/internal/models"
)

// ErrNoReplies is returned when every sample of a run was lost
var ErrNoReplies = errors.New("no replies received")

// Sampler takes repeated ping samples against a target
type Sampler struct {
	pinger  models.Pinger
	count   int
	timeout time.Duration
	log     zerolog.Logger
}

// NewSampler creates a Sampler sending count requests with a per-request timeout
func NewSampler(pinger models.Pinger, count int, timeout time.Duration, log zerolog.Logger) *Sampler {
	return &Sampler{
		pinger:  pinger,
		count:   count,
		timeout: timeout,
		log:     log,
	}
}

// Measure pings target count times in sequence and summarizes the replies.
// It fails when ctx expires mid-run or when no request was answered.
func (s *Sampler) Measure(ctx context.Context, target string) (models.PingStats, error) {
	if target == "" {
		return models.PingStats{}, models.NewProbeError(models.ProbePing, models.ErrProbeUnavailable, errors.New("no ping target"))
	}

	samples := make([]models.PingResult, 0, s.count)
	for i := 0; i < s.count; i++ {
		result, err := s.pinger.Ping(ctx, target, s.timeout)
		if err != nil {
			return models.PingStats{Target: target}, models.ClassifyProbeError(models.ProbePing,
				fmt.Errorf("sample %d/%d to %s: %w", i+1, s.count, target, err))
		}

		s.log.Debug().
			Str("target", target).
			Int("seq", i+1).
			Bool("success", result.Success).
			Float64("rtt_ms", result.RTT).
			Str("error", result.ErrorMessage).
			Msg("ping sample")

		samples = append(samples, result)
	}

	stats := Summarize(target, samples)
	if stats.Received == 0 {
		return models.PingStats{Target: target, Sent: stats.Sent}, models.NewProbeError(models.ProbePing,
			models.ErrProbeUnavailable, fmt.Errorf("%s: %w", target, ErrNoReplies))
	}
	return stats, nil
}
