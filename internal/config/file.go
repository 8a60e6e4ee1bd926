package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by LoadEnv
const EnvPrefix = "NETSPEED_"

// fileConfig mirrors Config for YAML files; nil fields are left untouched
type fileConfig struct {
	PingCount          *int     `yaml:"ping_count"`
	TimeoutSeconds     *float64 `yaml:"timeout_seconds"`
	PingTimeoutSeconds *float64 `yaml:"ping_timeout_seconds"`
	PingTarget         *string  `yaml:"ping_target"`
	Tests              *int     `yaml:"tests"`
	ServerCount        *int     `yaml:"server_count"`
	MaxConnections     *int     `yaml:"max_connections"`
	DatabasePath       *string  `yaml:"database_path"`
	RetentionDays      *int     `yaml:"retention_days"`
	ChartDir           *string  `yaml:"chart_dir"`
	LogLevel           *string  `yaml:"log_level"`
	InfoURL            *string  `yaml:"info_url"`
	IPURL              *string  `yaml:"ip_url"`
}

// LoadFile applies the YAML file at path on top of c
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setInt(&c.PingCount, fc.PingCount)
	setInt(&c.Tests, fc.Tests)
	setInt(&c.ServerCount, fc.ServerCount)
	setInt(&c.MaxConnections, fc.MaxConnections)
	setInt(&c.RetentionDays, fc.RetentionDays)
	setString(&c.PingTarget, fc.PingTarget)
	setString(&c.DatabasePath, fc.DatabasePath)
	setString(&c.ChartDir, fc.ChartDir)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.InfoURL, fc.InfoURL)
	setString(&c.IPURL, fc.IPURL)
	if fc.TimeoutSeconds != nil {
		c.Timeout = seconds(*fc.TimeoutSeconds)
	}
	if fc.PingTimeoutSeconds != nil {
		c.PingTimeout = seconds(*fc.PingTimeoutSeconds)
	}
	return nil
}

// LoadEnv loads a .env file from the working directory when present and
// applies NETSPEED_* variables on top of c.
func (c *Config) LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	ints := map[string]*int{
		"PING_COUNT":     &c.PingCount,
		"TESTS":          &c.Tests,
		"SERVERS":        &c.ServerCount,
		"CONNECTIONS":    &c.MaxConnections,
		"RETENTION_DAYS": &c.RetentionDays,
	}
	for key, dst := range ints {
		raw, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
	}

	durations := map[string]*time.Duration{
		"TIMEOUT_SECONDS": &c.Timeout,
		"PING_TIMEOUT":    &c.PingTimeout,
	}
	for key, dst := range durations {
		raw, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = seconds(n)
	}

	strs := map[string]*string{
		"PING_TARGET": &c.PingTarget,
		"DB":          &c.DatabasePath,
		"CHART_DIR":   &c.ChartDir,
		"LOG_LEVEL":   &c.LogLevel,
		"INFO_URL":    &c.InfoURL,
		"IP_URL":      &c.IPURL,
	}
	for key, dst := range strs {
		if raw, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = raw
		}
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
