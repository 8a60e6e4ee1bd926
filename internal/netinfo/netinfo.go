// Package netinfo looks up device and network descriptors: provider,
// location, external and internal IP, and the device's OS.
package netinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"netspeed/internal/models"
)

const maxBody = 64 << 10

// Lookup queries the IP metadata endpoints
type Lookup struct {
	client  *http.Client
	infoURL string
	ipURL   string
}

// New creates a Lookup. infoURL must serve ipinfo.io-style JSON,
// ipURL the caller's address as plain text.
func New(client *http.Client, infoURL, ipURL string) *Lookup {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Lookup{client: client, infoURL: infoURL, ipURL: ipURL}
}

type ipInfo struct {
	IP  string `json:"ip"`
	Org string `json:"org"`
	Loc string `json:"loc"`
}

// Lookup fills every descriptor it can. The returned error joins the
// failures of the remote lookups; local descriptors never fail on their own
// but are only read until ctx expires.
func (l *Lookup) Lookup(ctx context.Context) (models.NetworkInfo, error) {
	info := models.NetworkInfo{
		InternalIP: internalIP(ctx),
		Device:     deviceType(),
	}

	var errs []error

	meta, err := l.fetchInfo(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("ip metadata: %w", err))
	} else {
		info.Provider = meta.Org
		info.Location = meta.Loc
	}

	ip, err := l.fetchExternalIP(ctx)
	switch {
	case err == nil:
		info.ExternalIP = ip
	case meta.IP != "":
		info.ExternalIP = meta.IP
	default:
		errs = append(errs, fmt.Errorf("external ip: %w", err))
	}

	return info, errors.Join(errs...)
}

func (l *Lookup) fetchInfo(ctx context.Context) (ipInfo, error) {
	var meta ipInfo
	body, err := l.get(ctx, l.infoURL, "application/json")
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return ipInfo{}, fmt.Errorf("decode %s: %w", l.infoURL, err)
	}
	return meta, nil
}

func (l *Lookup) fetchExternalIP(ctx context.Context) (string, error) {
	body, err := l.get(ctx, l.ipURL, "text/plain")
	if err != nil {
		return "", err
	}
	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("%s returned %q, not an IP address", l.ipURL, ip)
	}
	return ip, nil
}

func (l *Lookup) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBody))
}

// internalIP resolves the hostname, falling back to the source address the
// kernel would pick for an outbound UDP socket (no packet is sent).
func internalIP(ctx context.Context) string {
	if host, err := os.Hostname(); err == nil {
		if addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host); err == nil {
			for _, a := range addrs {
				if v4 := a.IP.To4(); v4 != nil && !v4.IsLoopback() {
					return v4.String()
				}
			}
		}
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", "192.0.2.1:9")
	if err != nil {
		return ""
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return ""
}
