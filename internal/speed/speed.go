// Package speed measures download and upload throughput against
// speedtest.net servers.
package speed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"time"

	"github.com/rs/zerolog"
	st "github.com/showwin/speedtest-go/speedtest"

	"netspeed/internal/models"
)

// RunConfig controls how a speed test is executed
type RunConfig struct {
	// Nearest servers (by distance) to latency-test before choosing one.
	ServerCount int
	// Download/upload rounds averaged into the result.
	Tests int
	// Parallel connections used by the speedtest client.
	MaxConnections int
}

// Probe runs speed tests
type Probe struct {
	cfg RunConfig
	log zerolog.Logger
}

// New creates a speed Probe
func New(cfg RunConfig, log zerolog.Logger) *Probe {
	if cfg.ServerCount <= 0 {
		cfg.ServerCount = 5
	}
	if cfg.Tests <= 0 {
		cfg.Tests = 1
	}
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = 4
	}
	return &Probe{cfg: cfg, log: log}
}

// Measure selects the lowest-latency server among the nearest candidates and
// runs the configured number of download and upload rounds against it.
// It fails when no server answers, when every round of either direction
// failed, or when ctx expires before the rounds are done.
func (p *Probe) Measure(ctx context.Context) (models.SpeedResult, error) {
	var result models.SpeedResult

	// a dedicated client keeps no state between runs
	stc := st.New(st.WithUserConfig(&st.UserConfig{MaxConnections: p.cfg.MaxConnections}))
	stc.SetNThread(p.cfg.MaxConnections)
	defer func() {
		stc.Snapshots().Clean()
		stc.Reset()
	}()

	if user, err := stc.FetchUserInfoContext(ctx); err != nil {
		p.log.Debug().Err(err).Msg("fetch user info failed")
	} else {
		result.ISP = user.Isp
	}

	p.log.Info().Msg("Selecting the best server...")
	server, err := p.selectServer(ctx, stc)
	if err != nil {
		return result, err
	}
	result.Server = serverInfo(server)

	p.log.Info().
		Str("host", result.Server.Host).
		Str("location", result.Server.Name+", "+result.Server.Country).
		Dur("latency", server.Latency).
		Msg("Selected server")

	dl, ul, err := p.runRounds(ctx, &serverTransfer{stc: stc, server: server})
	result.Tests = dl.n
	if err != nil {
		return result, err
	}
	result.Download, result.DownloadMB = dl.mean()
	result.Upload, result.UploadMB = ul.mean()
	return result, nil
}

// runRounds runs the configured download and upload rounds through t.
// An expired ctx ends the run with its error. It fails unless at least one
// round completed in each direction.
func (p *Probe) runRounds(ctx context.Context, t transfer) (dl, ul rounds, err error) {
	for i := 1; i <= p.cfg.Tests; i++ {
		if err := ctx.Err(); err != nil {
			return dl, ul, err
		}

		p.log.Info().Int("test", i).Int("of", p.cfg.Tests).Msg("Testing download speed...")
		mbps, n, err := t.Download(ctx)
		if cerr := ctx.Err(); cerr != nil {
			return dl, ul, fmt.Errorf("download test: %w", cerr)
		}
		if err != nil {
			dl.fail(err)
			p.log.Warn().Err(err).Int("test", i).Msg("download test failed")
			continue
		}
		dl.add(mbps, bytesToMB(n))

		p.log.Info().Int("test", i).Int("of", p.cfg.Tests).Msg("Testing upload speed...")
		mbps, n, err = t.Upload(ctx)
		if cerr := ctx.Err(); cerr != nil {
			return dl, ul, fmt.Errorf("upload test: %w", cerr)
		}
		if err != nil {
			ul.fail(err)
			p.log.Warn().Err(err).Int("test", i).Msg("upload test failed")
			continue
		}
		ul.add(mbps, bytesToMB(n))
	}

	if dl.n == 0 {
		return dl, ul, fmt.Errorf("download test failed after %d attempts: %w", p.cfg.Tests, dl.lastErr)
	}
	if ul.n == 0 {
		err := ul.lastErr
		if err == nil {
			err = errors.New("no upload round completed")
		}
		return dl, ul, fmt.Errorf("upload test failed: %w", err)
	}
	return dl, ul, nil
}

func (p *Probe) selectServer(ctx context.Context, stc *st.Speedtest) (*st.Server, error) {
	servers, err := stc.FetchServerListContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch server list: %w", err)
	}
	if a := servers.Available(); a != nil {
		servers = *a
	}
	if len(servers) == 0 {
		return nil, errors.New("no servers available")
	}

	candidates := nearest(servers, p.cfg.ServerCount)

	// sequential latency tests
	pinged := make([]*st.Server, 0, len(candidates))
	for _, s := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.PingTestContext(ctx, nil); err != nil {
			p.log.Debug().Err(err).Str("host", s.Host).Msg("server latency test failed")
			continue
		}
		pinged = append(pinged, s)
	}

	best := fastest(pinged)
	if best == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("all server latency tests failed")
	}
	return best, nil
}

// nearest returns up to n servers ordered by distance
func nearest(servers st.Servers, n int) []*st.Server {
	sorted := make([]*st.Server, len(servers))
	copy(sorted, servers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Distance < sorted[j].Distance })
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// fastest returns the server with the lowest positive latency
func fastest(servers []*st.Server) *st.Server {
	var best *st.Server
	for _, s := range servers {
		if s == nil || s.Latency <= 0 {
			continue
		}
		if best == nil || s.Latency < best.Latency {
			best = s
		}
	}
	return best
}

func serverInfo(s *st.Server) models.ServerInfo {
	host := s.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	info := models.ServerInfo{
		Host:    host,
		Name:    s.Name,
		Country: s.Country,
		Sponsor: s.Sponsor,
	}
	if s.Latency > 0 {
		info.Latency = models.Some(durationMs(s.Latency))
	}
	return info
}

// rounds accumulates successful test rounds of one direction
type rounds struct {
	n        int
	mbps, mb float64
	lastErr  error
}

func (r *rounds) add(mbps, mb float64) {
	r.n++
	r.mbps += mbps
	r.mb += mb
}

func (r *rounds) fail(err error) {
	r.lastErr = err
}

func (r *rounds) mean() (mbps, mb models.Measurement) {
	if r.n == 0 {
		return models.None(), models.None()
	}
	return models.Some(r.mbps / float64(r.n)), models.Some(r.mb / float64(r.n))
}

func bytesToMB(b int64) float64 {
	return float64(b) / 1_000_000
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
