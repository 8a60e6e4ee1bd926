package ping

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"time"

	"netspeed/internal/models"
)

var rttPatterns = []*regexp.Regexp{
	regexp.MustCompile(`time[=<]([0-9.]+)\s*ms`),
	regexp.MustCompile(`round-trip min/avg/max(?:/stddev)? = [0-9.]+/([0-9.]+)/`),
	regexp.MustCompile(`rtt min/avg/max/mdev = [0-9.]+/([0-9.]+)/`),
}

var hostnamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9.-]*[A-Za-z0-9])?$`)

// ErrInvalidTarget is returned for targets that are neither an IP address
// nor a hostname
var ErrInvalidTarget = errors.New("invalid ping target")

// Pinger runs the system ping binary, one echo request per call
type Pinger struct {
	binary string
}

// New creates a new Pinger
func New() *Pinger {
	return &Pinger{binary: "ping"}
}

// Ping sends a single echo request to target. A request without reply is
// reported as an unsuccessful result, not an error; only a cancelled or
// expired ctx or an invalid target returns an error.
func (p *Pinger) Ping(ctx context.Context, target string, timeout time.Duration) (models.PingResult, error) {
	result := models.PingResult{
		Timestamp: time.Now(),
		Target:    target,
	}

	if err := validateTarget(target); err != nil {
		result.ErrorMessage = err.Error()
		return result, err
	}

	cmd := exec.CommandContext(ctx, p.binary, pingArgs(runtime.GOOS, target, timeout)...)
	output, err := cmd.CombinedOutput()

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ErrorMessage = ctxErr.Error()
		return result, ctxErr
	}

	if err != nil {
		result.ErrorMessage = err.Error()
		return result, nil
	}

	rtt, ok := parsePingOutput(string(output))
	if !ok {
		result.ErrorMessage = "no round-trip time in ping output"
		return result, nil
	}
	result.Success = true
	result.RTT = rtt
	return result, nil
}

// pingArgs builds platform-specific arguments for a single echo request
func pingArgs(goos, target string, timeout time.Duration) []string {
	switch goos {
	case "windows":
		return []string{"-n", "1", "-w", strconv.FormatInt(timeout.Milliseconds(), 10), target}
	case "darwin", "freebsd", "openbsd", "netbsd":
		// -W is milliseconds on BSD-derived ping
		return []string{"-c", "1", "-W", strconv.FormatInt(timeout.Milliseconds(), 10), target}
	default:
		// whole seconds, rounded up
		secs := int(math.Ceil(timeout.Seconds()))
		if secs < 1 {
			secs = 1
		}
		return []string{"-c", "1", "-W", strconv.Itoa(secs), target}
	}
}

// validateTarget keeps server-supplied hosts from being read as ping options
func validateTarget(target string) error {
	if net.ParseIP(target) != nil {
		return nil
	}
	if len(target) > 253 || !hostnamePattern.MatchString(target) {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	return nil
}

// parsePingOutput parses RTT from ping output
func parsePingOutput(output string) (float64, bool) {
	// Linux/Mac: "time=XX.X ms"
	// Windows: "time=XXms" or "time<1ms"
	for _, re := range rttPatterns {
		matches := re.FindStringSubmatch(output)
		if len(matches) > 1 {
			if rtt, err := strconv.ParseFloat(matches[1], 64); err == nil {
				return rtt, true
			}
		}
	}

	return 0, false
}
