package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/cogniz/pkg/dotdir"
)

// EnvPrefix is prepended to every environment override, e.g. COGNIZ_SERVE_LISTEN.
const EnvPrefix = "COGNIZ"

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the COGNIZ_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (COGNIZ_SERVE_LISTEN, COGNIZ_CACHE_TTL_SECONDS, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Connection and session have no defaults but are registered so
	// AutomaticEnv can resolve them.
	v.SetDefault("connection.base_url", d.Connection.BaseURL)
	v.SetDefault("connection.project_id", d.Connection.ProjectID)
	v.SetDefault("connection.project_name", d.Connection.ProjectName)

	// Client
	v.SetDefault("client.platform", d.Client.Platform)
	v.SetDefault("client.recent_limit", d.Client.RecentLimit)

	// Cache
	v.SetDefault("cache.ttl_seconds", d.Cache.TTLSeconds)

	// Serve
	v.SetDefault("serve.listen", d.Serve.Listen)
	v.SetDefault("serve.log_file", d.Serve.LogFile)

	// Telemetry
	v.SetDefault("telemetry.provider", d.Telemetry.Provider)
	v.SetDefault("telemetry.brokers", d.Telemetry.Brokers)
	v.SetDefault("telemetry.topic", d.Telemetry.Topic)
}

// Settings resolves the runtime settings from v into a Config. Connection
// and session are left empty: they are owned by the connection service.
func Settings(v *viper.Viper) *Config {
	return &Config{
		Version: v.GetInt("version"),
		Client: ClientConfig{
			Platform:    v.GetString("client.platform"),
			RecentLimit: v.GetUint("client.recent_limit"),
		},
		Cache: CacheConfig{
			TTLSeconds: v.GetUint("cache.ttl_seconds"),
		},
		Serve: ServeConfig{
			Listen:  v.GetString("serve.listen"),
			LogFile: v.GetString("serve.log_file"),
		},
		Telemetry: TelemetryConfig{
			Provider: v.GetString("telemetry.provider"),
			Brokers:  v.GetString("telemetry.brokers"),
			Topic:    v.GetString("telemetry.topic"),
		},
	}
}
