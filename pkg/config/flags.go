package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --limit on
// both "cogniz search" and "cogniz recent").
type Flag struct {
	// Name is the long flag name (e.g. "limit").
	Name string

	// Shorthand is the one-letter short flag (e.g. "n"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "client.recent_limit").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagListen            = "listen"
	FlagLogFile           = "log-file"
	FlagLimit             = "limit"
	FlagCacheTTL          = "cache-ttl"
	FlagPlatform          = "platform"
	FlagTelemetryProvider = "telemetry"
	FlagTelemetryBrokers  = "telemetry-brokers"
	FlagTelemetryTopic    = "telemetry-topic"
)

// DefaultFlags is the registry shared by every cogniz command.
var DefaultFlags = FlagSet{
	FlagListen: {
		Name:        "listen",
		Shorthand:   "l",
		ViperKey:    "serve.listen",
		Description: "Address for the bridge server to listen on",
	},
	FlagLogFile: {
		Name:        "log-file",
		ViperKey:    "serve.log_file",
		Description: "Also write JSON logs to this file",
	},
	FlagLimit: {
		Name:        "limit",
		Shorthand:   "n",
		ViperKey:    "client.recent_limit",
		Description: "Maximum number of memories to return",
	},
	FlagCacheTTL: {
		Name:        "cache-ttl",
		ViperKey:    "cache.ttl_seconds",
		Description: "Seconds a recent-memories listing stays cached",
	},
	FlagPlatform: {
		Name:        "platform",
		ViperKey:    "client.platform",
		Description: "Value sent as X-Memory-Platform-Client",
	},
	FlagTelemetryProvider: {
		Name:        "telemetry",
		ViperKey:    "telemetry.provider",
		Description: "Telemetry publisher (none, log, kafka)",
	},
	FlagTelemetryBrokers: {
		Name:        "telemetry-brokers",
		ViperKey:    "telemetry.brokers",
		Description: "Comma separated Kafka brokers for telemetry",
	},
	FlagTelemetryTopic: {
		Name:        "telemetry-topic",
		ViperKey:    "telemetry.topic",
		Description: "Kafka topic for telemetry events",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultUint returns the default uint value for a viper key from NewDefaultConfig.
func defaultUint(viperKey string) uint {
	v := viper.New()
	setViperDefaults(v)
	return v.GetUint(viperKey)
}
