package config

const (
	defaultPlatform    = "vscode-extension"
	defaultRecentLimit = 10

	defaultCacheTTLSeconds = 10

	defaultServeListen = ":7311"

	defaultTelemetryProvider = "log"
	defaultTelemetryTopic    = "cogniz.events"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Client: ClientConfig{
			Platform:    defaultPlatform,
			RecentLimit: defaultRecentLimit,
		},
		Cache: CacheConfig{
			TTLSeconds: defaultCacheTTLSeconds,
		},
		Serve: ServeConfig{
			Listen: defaultServeListen,
		},
		Telemetry: TelemetryConfig{
			Provider: defaultTelemetryProvider,
			Topic:    defaultTelemetryTopic,
		},
	}
}
