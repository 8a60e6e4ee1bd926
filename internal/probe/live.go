// Package probe wires the real measurement collaborators behind models.Prober.
package probe

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"netspeed/internal/config"
	"netspeed/internal/models"
	"netspeed/internal/netinfo"
	"netspeed/internal/ping"
	"netspeed/internal/speed"
)

// Live measures against the real network
type Live struct {
	speed *speed.Probe
	ping  *ping.Sampler
	info  *netinfo.Lookup
}

var _ models.Prober = (*Live)(nil)

// NewLive builds the speedtest.net, system ping and IP metadata probes from cfg
func NewLive(cfg config.Config, log zerolog.Logger) *Live {
	return &Live{
		speed: speed.New(speed.RunConfig{
			ServerCount:    cfg.ServerCount,
			Tests:          cfg.Tests,
			MaxConnections: cfg.MaxConnections,
		}, log.With().Str("probe", models.ProbeSpeed).Logger()),
		ping: ping.NewSampler(ping.New(), cfg.PingCount, cfg.PingTimeout,
			log.With().Str("probe", models.ProbePing).Logger()),
		info: netinfo.New(&http.Client{}, cfg.InfoURL, cfg.IPURL),
	}
}

func (l *Live) MeasureSpeed(ctx context.Context) (models.SpeedResult, error) {
	return l.speed.Measure(ctx)
}

func (l *Live) MeasurePing(ctx context.Context, target string) (models.PingStats, error) {
	return l.ping.Measure(ctx, target)
}

func (l *Live) LookupInfo(ctx context.Context) (models.NetworkInfo, error) {
	return l.info.Lookup(ctx)
}
