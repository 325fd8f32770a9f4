package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config represents the persistent cogniz configuration stored as config.toml
// in the .cogniz/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version    int              `toml:"version"`
	Connection ConnectionConfig `toml:"connection"`
	Session    SessionConfig    `toml:"session"`
	Client     ClientConfig     `toml:"client"`
	Cache      CacheConfig      `toml:"cache"`
	Serve      ServeConfig      `toml:"serve"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
}

// ConnectionConfig is the Cogniz server and default project.
type ConnectionConfig struct {
	BaseURL     string `toml:"base_url,omitempty"`
	ProjectID   string `toml:"project_id,omitempty"`
	ProjectName string `toml:"project_name,omitempty"`
}

// SessionConfig holds the project selected in the browser or with
// "cogniz projects use". It overrides the connection's default project.
type SessionConfig struct {
	ProjectID   string `toml:"project_id,omitempty"`
	ProjectName string `toml:"project_name,omitempty"`
}

// ClientConfig holds settings for requests sent to the Cogniz server.
type ClientConfig struct {
	Platform    string `toml:"platform,omitempty"`
	RecentLimit uint   `toml:"recent_limit,omitempty"`
}

// CacheConfig holds settings for the recent-memories cache.
type CacheConfig struct {
	TTLSeconds uint `toml:"ttl_seconds,omitempty"`
}

// ServeConfig holds bridge server settings.
type ServeConfig struct {
	Listen  string `toml:"listen,omitempty"`
	LogFile string `toml:"log_file,omitempty"`
}

// TelemetryConfig selects where usage events are published.
type TelemetryConfig struct {
	Provider string `toml:"provider,omitempty"`
	Brokers  string `toml:"brokers,omitempty"`
	Topic    string `toml:"topic,omitempty"`
}

// BrokerList splits the comma separated broker setting.
func (t TelemetryConfig) BrokerList() []string {
	var out []string
	for b := range strings.SplitSeq(t.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func parseUintKey(key, v string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return uint(n), nil
}

func formatUint(n uint) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(n), 10)
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"connection.base_url": {
		get: func(c *Config) string { return c.Connection.BaseURL },
		set: func(c *Config, v string) error { c.Connection.BaseURL = strings.TrimSpace(v); return nil },
	},
	"connection.project_id": {
		get: func(c *Config) string { return c.Connection.ProjectID },
		set: func(c *Config, v string) error { c.Connection.ProjectID = strings.TrimSpace(v); return nil },
	},
	"connection.project_name": {
		get: func(c *Config) string { return c.Connection.ProjectName },
		set: func(c *Config, v string) error { c.Connection.ProjectName = strings.TrimSpace(v); return nil },
	},
	"session.project_id": {
		get: func(c *Config) string { return c.Session.ProjectID },
		set: func(c *Config, v string) error { c.Session.ProjectID = strings.TrimSpace(v); return nil },
	},
	"session.project_name": {
		get: func(c *Config) string { return c.Session.ProjectName },
		set: func(c *Config, v string) error { c.Session.ProjectName = strings.TrimSpace(v); return nil },
	},
	"client.platform": {
		get: func(c *Config) string { return c.Client.Platform },
		set: func(c *Config, v string) error { c.Client.Platform = v; return nil },
	},
	"client.recent_limit": {
		get: func(c *Config) string { return formatUint(c.Client.RecentLimit) },
		set: func(c *Config, v string) error {
			n, err := parseUintKey("client.recent_limit", v)
			if err != nil {
				return err
			}
			c.Client.RecentLimit = n
			return nil
		},
	},
	"cache.ttl_seconds": {
		get: func(c *Config) string { return formatUint(c.Cache.TTLSeconds) },
		set: func(c *Config, v string) error {
			n, err := parseUintKey("cache.ttl_seconds", v)
			if err != nil {
				return err
			}
			c.Cache.TTLSeconds = n
			return nil
		},
	},
	"serve.listen": {
		get: func(c *Config) string { return c.Serve.Listen },
		set: func(c *Config, v string) error { c.Serve.Listen = v; return nil },
	},
	"serve.log_file": {
		get: func(c *Config) string { return c.Serve.LogFile },
		set: func(c *Config, v string) error { c.Serve.LogFile = v; return nil },
	},
	"telemetry.provider": {
		get: func(c *Config) string { return c.Telemetry.Provider },
		set: func(c *Config, v string) error {
			switch v {
			case "none", "log", "kafka":
				c.Telemetry.Provider = v
				return nil
			default:
				return fmt.Errorf("invalid value for telemetry.provider: %q (expected none, log or kafka)", v)
			}
		},
	},
	"telemetry.brokers": {
		get: func(c *Config) string { return c.Telemetry.Brokers },
		set: func(c *Config, v string) error { c.Telemetry.Brokers = v; return nil },
	},
	"telemetry.topic": {
		get: func(c *Config) string { return c.Telemetry.Topic },
		set: func(c *Config, v string) error { c.Telemetry.Topic = v; return nil },
	},
}
