package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	cognizmcp "github.com/papercomputeco/cogniz/api/mcp"
	"github.com/papercomputeco/cogniz/pkg/cogniz"
	"github.com/papercomputeco/cogniz/pkg/connection"
	"github.com/papercomputeco/cogniz/pkg/memory"
)

// Service is the Cogniz client surface the bridge serves. *cogniz.Client
// implements it.
type Service interface {
	cognizmcp.Memories

	HasConfiguration(ctx context.Context) bool
	ActiveProject(projectID, projectName string) (connection.SelectedProject, error)
	SelectProject(p connection.SelectedProject) error
	ForceRefresh()
	ListSkills(ctx context.Context) ([]cogniz.Skill, error)
	GetSkill(ctx context.Context, id string) (*cogniz.Skill, error)
	ExecuteSkill(ctx context.Context, id string, exec cogniz.SkillExecution) (*cogniz.SkillResult, error)
}

var _ Service = (*cogniz.Client)(nil)

// Server is the bridge between local tools and the Cogniz service.
type Server struct {
	config  Config
	service Service
	logger  *slog.Logger
	app     *fiber.App
}

// NewServer creates a new API server backed by service.
func NewServer(config Config, service Service, logger *slog.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:  config,
		service: service,
		logger:  logger,
		app:     app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/v1/status", s.handleStatus)
	app.Get("/v1/memories", s.handleListRecent)
	app.Post("/v1/memories", s.handleStore)
	app.Get("/v1/search", s.handleSearch)
	app.Post("/v1/refresh", s.handleRefresh)
	app.Get("/v1/projects", s.handleListProjects)
	app.Put("/v1/projects/active", s.handleSelectProject)
	app.Get("/v1/skills", s.handleListSkills)
	app.Get("/v1/skills/:id", s.handleGetSkill)
	app.Post("/v1/skills/:id/execute", s.handleExecuteSkill)

	if !config.DisableMCP {
		mcpServer, err := cognizmcp.NewServer(cognizmcp.Config{
			Memories: service,
			Tracker:  config.Tracker,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating MCP server: %w", err)
		}
		app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))
	}

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// noRecords keeps empty listings encoded as [] rather than null.
func noRecords(records []memory.Record) []memory.Record {
	if records == nil {
		return []memory.Record{}
	}
	return records
}
