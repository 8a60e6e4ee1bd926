package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// Load builds a Config from defaults, an optional YAML file, the environment
// and finally the command-line flags in args. Only flags given explicitly
// override the earlier layers.
func Load(args []string, output io.Writer) (Config, error) {
	def := Default()

	fs := flag.NewFlagSet("speedtest", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	var (
		configPath  = fs.String("config", "", "Path to YAML config file")
		pingCount   = fs.Int("count", def.PingCount, "Number of ping samples")
		timeout     = fs.Duration("timeout", def.Timeout, "Per-probe timeout")
		pingTimeout = fs.Duration("ping-timeout", def.PingTimeout, "Per-sample ping timeout")
		target      = fs.String("target", def.PingTarget, "Ping target when no speed test server was selected")
		tests       = fs.Int("tests", def.Tests, "Number of download/upload rounds to average")
		servers     = fs.Int("servers", def.ServerCount, "Number of nearest servers to latency-test")
		conns       = fs.Int("connections", def.MaxConnections, "Parallel connections for speed tests")
		dbPath      = fs.String("db", def.DatabasePath, "History database path (empty disables)")
		retention   = fs.Int("retention", def.RetentionDays, "Days of history to keep (0 keeps everything)")
		chartDir    = fs.String("chart", def.ChartDir, "Directory for the latency chart PNG (empty disables)")
		history     = fs.Int("history", 0, "Print the last N stored runs instead of testing")
		logLevel    = fs.String("log-level", def.LogLevel, "Log level (debug, info, warn, error)")
		infoURL     = fs.String("info-url", def.InfoURL, "IP metadata endpoint (ipinfo.io compatible)")
		ipURL       = fs.String("ip-url", def.IPURL, "External IP endpoint (plain text)")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := def
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.LoadEnv(); err != nil {
		return Config{}, err
	}

	setters := map[string]func(){
		"count":        func() { cfg.PingCount = *pingCount },
		"timeout":      func() { cfg.Timeout = *timeout },
		"ping-timeout": func() { cfg.PingTimeout = *pingTimeout },
		"target":       func() { cfg.PingTarget = *target },
		"tests":        func() { cfg.Tests = *tests },
		"servers":      func() { cfg.ServerCount = *servers },
		"connections":  func() { cfg.MaxConnections = *conns },
		"db":           func() { cfg.DatabasePath = *dbPath },
		"retention":    func() { cfg.RetentionDays = *retention },
		"chart":        func() { cfg.ChartDir = *chartDir },
		"history":      func() { cfg.History = *history },
		"log-level":    func() { cfg.LogLevel = *logLevel },
		"info-url":     func() { cfg.InfoURL = *infoURL },
		"ip-url":       func() { cfg.IPURL = *ipURL },
	}
	fs.Visit(func(f *flag.Flag) {
		if set, ok := setters[f.Name]; ok {
			set()
		}
	})

	return cfg, nil
}

func seconds(n float64) time.Duration {
	return time.Duration(n * float64(time.Second))
}
