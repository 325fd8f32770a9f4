// Package session assembles the settings, client and telemetry tracker a
// cogniz command works with.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/cogniz/pkg/cogniz"
	"github.com/papercomputeco/cogniz/pkg/config"
	"github.com/papercomputeco/cogniz/pkg/connection"
	"github.com/papercomputeco/cogniz/pkg/logger"
	"github.com/papercomputeco/cogniz/pkg/memory/cache"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
	telemetryutils "github.com/papercomputeco/cogniz/pkg/telemetry/utils"
)

// Session is one command invocation's view of the configured Cogniz
// connection.
type Session struct {
	ConfigDir string
	Debug     bool

	Viper      *viper.Viper
	Settings   *config.Config
	Connection *connection.Service
	Client     *cogniz.Client
	Tracker    *telemetry.Tracker
	Logger     *slog.Logger
}

// Options adjust Open.
type Options struct {
	// LogWriter receives log output. Defaults to os.Stderr so command output
	// on stdout stays clean.
	LogWriter io.Writer

	// Logger replaces the logger Open would build.
	Logger *slog.Logger
}

// FromCommand reads the global --config-dir and --debug flags from cmd and
// opens a Session.
func FromCommand(cmd *cobra.Command) (*Session, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")
	debug, _ := cmd.Flags().GetBool("debug")
	return Open(configDir, debug, Options{})
}

// Open resolves settings for configDir and builds the client.
func Open(configDir string, debug bool, opts Options) (*Session, error) {
	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}
	return OpenWithViper(v, configDir, debug, opts)
}

// OpenWithViper is Open for callers that already bound their flags to v.
func OpenWithViper(v *viper.Viper, configDir string, debug bool, opts Options) (*Session, error) {
	settings := config.Settings(v)

	log := opts.Logger
	if log == nil {
		w := opts.LogWriter
		if w == nil {
			w = os.Stderr
		}
		log = logger.New(
			logger.WithDebug(debug),
			logger.WithPretty(true),
			logger.WithWriter(w),
		)
	}

	svc, err := connection.NewService(configDir)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(settings.Cache.TTLSeconds) * time.Second
	client := cogniz.New(svc,
		cogniz.WithLogger(log),
		cogniz.WithPlatform(settings.Client.Platform),
		cogniz.WithCache(cache.New(cache.WithTTL(ttl))),
	)

	pub, err := telemetryutils.NewPublisher(&telemetryutils.NewPublisherOpts{
		ProviderType: settings.Telemetry.Provider,
		Brokers:      settings.Telemetry.BrokerList(),
		Topic:        settings.Telemetry.Topic,
		Logger:       log,
	})
	if err != nil {
		return nil, fmt.Errorf("creating telemetry publisher: %w", err)
	}

	return &Session{
		ConfigDir:  configDir,
		Debug:      debug,
		Viper:      v,
		Settings:   settings,
		Connection: svc,
		Client:     client,
		Tracker:    telemetry.NewTracker(pub, log),
		Logger:     log,
	}, nil
}

// Limit returns n, or the configured recent limit when n is zero.
func (s *Session) Limit(n uint) int {
	if n == 0 {
		n = s.Settings.Client.RecentLimit
	}
	if n == 0 {
		return cogniz.DefaultLimit
	}
	return int(n)
}

// Close flushes telemetry.
func (s *Session) Close() error {
	return s.Tracker.Close()
}
