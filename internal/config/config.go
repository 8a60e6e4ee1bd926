package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Config holds all configuration for a speed test run
type Config struct {
	PingCount      int
	Timeout        time.Duration // per-probe
	PingTimeout    time.Duration // per-sample
	PingTarget     string
	Tests          int
	ServerCount    int
	MaxConnections int
	DatabasePath   string
	RetentionDays  int
	ChartDir       string
	History        int
	LogLevel       string
	InfoURL        string
	IPURL          string
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		PingCount:      4,
		Timeout:        60 * time.Second,
		PingTimeout:    2 * time.Second,
		PingTarget:     "8.8.8.8",
		Tests:          1,
		ServerCount:    5,
		MaxConnections: 4,
		DatabasePath:   "speedtest_results.db",
		RetentionDays:  90,
		LogLevel:       "info",
		InfoURL:        "https://ipinfo.io/json",
		IPURL:          "https://api.ipify.org",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.PingCount <= 0 {
		return fmt.Errorf("ping count must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.PingTimeout <= 0 {
		return fmt.Errorf("ping timeout must be positive")
	}
	if c.PingTarget == "" {
		return fmt.Errorf("ping target cannot be empty")
	}
	if c.Tests <= 0 {
		return fmt.Errorf("number of tests must be positive")
	}
	if c.ServerCount <= 0 {
		return fmt.Errorf("server count must be positive")
	}
	if c.MaxConnections <= 0 {
		return fmt.Errorf("max connections must be positive")
	}
	if c.RetentionDays < 0 {
		return fmt.Errorf("retention days cannot be negative")
	}
	if c.History < 0 {
		return fmt.Errorf("history count cannot be negative")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	for name, raw := range map[string]string{"info url": c.InfoURL, "ip url": c.IPURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	return nil
}
