package report

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"netspeed/internal/config"
	"netspeed/internal/models"
)

// Generator runs the probes in a fixed order and assembles the result record
type Generator struct {
	prober models.Prober
	cfg    config.Config
	log    zerolog.Logger
	now    func() time.Time
}

// NewGenerator creates a new report generator
func NewGenerator(prober models.Prober, cfg config.Config, log zerolog.Logger) *Generator {
	return &Generator{
		prober: prober,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

// Run measures speed, then ping, then looks up network info. A probe that
// returns an error contributes nothing but a warning, so all of its fields
// stay absent; the run always completes. The only carry-over is the
// speed test ISP, used as provider when the info lookup has none.
func (g *Generator) Run(ctx context.Context) *models.Report {
	r := &models.Report{
		ID:        uuid.NewString(),
		Timestamp: g.now(),
	}

	g.runSpeed(ctx, r)
	g.runPing(ctx, r)
	g.runInfo(ctx, r)
	normalize(r)

	g.log.Info().
		Str("id", r.ID).
		Int("warnings", len(r.Warnings)).
		Msg(Summary(r))
	return r
}

func (g *Generator) runSpeed(ctx context.Context, r *models.Report) {
	pctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	res, err := g.prober.MeasureSpeed(pctx)
	if err != nil {
		g.warn(pctx, r, models.ProbeSpeed, err)
		return
	}
	r.Server = res.Server
	r.Download, r.DownloadMB = validPair(res.Download, res.DownloadMB)
	r.Upload, r.UploadMB = validPair(res.Upload, res.UploadMB)
	if res.ISP != "" {
		r.Info.Provider = res.ISP
	}
}

func (g *Generator) runPing(ctx context.Context, r *models.Report) {
	target := r.Server.Host
	if target == "" {
		target = g.cfg.PingTarget
	}

	pctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	g.log.Info().Str("target", target).Int("count", g.cfg.PingCount).Msg("Measuring ping...")
	stats, err := g.prober.MeasurePing(pctx, target)
	if err != nil {
		r.Ping = models.PingStats{Target: target}
		g.warn(pctx, r, models.ProbePing, err)
		return
	}
	if stats.Target == "" {
		stats.Target = target
	}
	r.Ping = stats
	r.PacketLoss = stats.Loss
}

func (g *Generator) runInfo(ctx context.Context, r *models.Report) {
	pctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	isp := r.Info.Provider
	info, err := g.prober.LookupInfo(pctx)
	if err != nil {
		info = models.NetworkInfo{}
		g.warn(pctx, r, models.ProbeInfo, err)
	}
	if info.Provider == "" {
		info.Provider = isp
	}
	r.Info = info
}

// warn classifies err and records it. An expired probe deadline always
// counts as a timeout, whatever error the collaborator surfaced.
func (g *Generator) warn(pctx context.Context, r *models.Report, probe string, err error) {
	pe := models.ClassifyProbeError(probe, err)
	if errors.Is(pctx.Err(), context.DeadlineExceeded) && !errors.Is(pe, models.ErrProbeTimeout) {
		pe = models.NewProbeError(probe, models.ErrProbeTimeout, pe.Cause)
	}

	g.log.Debug().Err(pe.Cause).Str("probe", probe).Msg("probe failed")
	r.Warnings = append(r.Warnings, models.Warning{Probe: probe, Err: pe})
}

// validPair keeps the data volume only alongside a valid rate
func validPair(rate, volume models.Measurement) (models.Measurement, models.Measurement) {
	if !rate.Valid {
		return models.None(), models.None()
	}
	return rate, volume
}

// normalize marks out-of-range values absent so a record never carries a
// negative figure, a loss outside [0, 100] or an unordered low/avg/high.
func normalize(r *models.Report) {
	for _, m := range []*models.Measurement{
		&r.Download, &r.Upload, &r.DownloadMB, &r.UploadMB, &r.Server.Latency,
		&r.Ping.Low, &r.Ping.High, &r.Ping.Avg, &r.Ping.Jitter,
	} {
		if m.Valid && (m.Value < 0 || math.IsNaN(m.Value) || math.IsInf(m.Value, 0)) {
			*m = models.None()
		}
	}

	if r.PacketLoss.Valid && !(r.PacketLoss.Value >= 0 && r.PacketLoss.Value <= 100) {
		r.PacketLoss = models.None()
	}
	r.Ping.Loss = r.PacketLoss

	p := &r.Ping
	if p.Low.Valid && p.Avg.Valid && p.High.Valid && !(p.Low.Value <= p.Avg.Value && p.Avg.Value <= p.High.Value) {
		p.Low, p.Avg, p.High, p.Jitter = models.None(), models.None(), models.None(), models.None()
	}
}
