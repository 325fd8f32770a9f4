// Package servecmder provides the serve command for running the local
// Cogniz bridge server.
package servecmder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/cogniz/api"
	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/config"
	"github.com/papercomputeco/cogniz/pkg/logger"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

type serveCommander struct {
	listen    string
	logFile   string
	platform  string
	cacheTTL  uint
	telemetry string
	brokers   string
	topic     string
	noMCP     bool

	debug     bool
	configDir string
	viper     *viper.Viper
	logger    *slog.Logger
}

const serveLongDesc string = `Run the local Cogniz bridge server.

The bridge exposes the configured Cogniz connection to editors and agents:
  GET  /ping, GET /v1/status
  GET  /v1/memories, POST /v1/memories, GET /v1/search, POST /v1/refresh
  GET  /v1/projects, PUT /v1/projects/active
  GET  /v1/skills, GET /v1/skills/:id, POST /v1/skills/:id/execute
  /mcp  MCP streamable HTTP endpoint (memory_search, memory_recent,
        memory_store, memory_projects)

Edits to config.toml, such as 'cogniz projects use', are picked up while the
server runs.

Flags override COGNIZ_* environment variables, which override config.toml.

Examples:
  cogniz serve
  cogniz serve --listen :9000 --log-file ~/.cogniz/serve.log
  cogniz serve --telemetry kafka --telemetry-brokers localhost:9092`

const serveShortDesc string = "Run the local Cogniz bridge server"

var serveFlags = []string{
	config.FlagListen,
	config.FlagLogFile,
	config.FlagPlatform,
	config.FlagCacheTTL,
	config.FlagTelemetryProvider,
	config.FlagTelemetryBrokers,
	config.FlagTelemetryTopic,
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.DefaultFlags, serveFlags)
			cmder.viper = v
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run(cmd.Context())
		},
	}

	config.AddStringFlag(cmd, config.DefaultFlags, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, config.DefaultFlags, config.FlagLogFile, &cmder.logFile)
	config.AddStringFlag(cmd, config.DefaultFlags, config.FlagPlatform, &cmder.platform)
	config.AddUintFlag(cmd, config.DefaultFlags, config.FlagCacheTTL, &cmder.cacheTTL)
	config.AddStringFlag(cmd, config.DefaultFlags, config.FlagTelemetryProvider, &cmder.telemetry)
	config.AddStringFlag(cmd, config.DefaultFlags, config.FlagTelemetryBrokers, &cmder.brokers)
	config.AddStringFlag(cmd, config.DefaultFlags, config.FlagTelemetryTopic, &cmder.topic)
	cmd.Flags().BoolVar(&cmder.noMCP, "no-mcp", false, "Do not mount the MCP endpoint")

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
	settings := config.Settings(c.viper)

	closeLog, err := c.newLogger(settings.Serve.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := session.OpenWithViper(c.viper, c.configDir, c.debug, session.Options{Logger: c.logger})
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.Client.HasConfiguration(ctx) {
		c.logger.Warn("cogniz connection is not configured; requests will fail until 'cogniz configure' is run")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := s.Connection.WatchProject(ctx, c.logger, s.Client.ForceRefresh); err != nil {
			c.logger.Warn("not watching config for project changes", "error", err)
		}
	}()

	server, err := api.NewServer(api.Config{
		ListenAddr: settings.Serve.Listen,
		Tracker:    s.Tracker,
		DisableMCP: c.noMCP,
	}, s.Client, c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	s.Tracker.Track(ctx, telemetry.EventActivate, map[string]any{"surface": "serve"})

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}

// newLogger builds the pretty stdout logger, fanned out to a JSON log file
// when one is configured.
func (c *serveCommander) newLogger(logFile string) (func(), error) {
	stdout := logger.New(logger.WithDebug(c.debug), logger.WithPretty(true), logger.WithPrefix("cogniz serve"))
	if logFile == "" {
		c.logger = stdout
		return func() {}, nil
	}

	fileLogger, closeFile, err := logger.NewFile(logFile, c.debug)
	if err != nil {
		return nil, err
	}
	c.logger = logger.Multi(stdout, fileLogger)
	return func() { _ = closeFile() }, nil
}
