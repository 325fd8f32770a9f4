// Package mcp provides an MCP (Model Context Protocol) server exposing Cogniz
// memories to agents.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/cogniz/pkg/cogniz"
	"github.com/papercomputeco/cogniz/pkg/memory"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
	"github.com/papercomputeco/cogniz/pkg/utils"
)

// Memories is the part of the Cogniz client the tools call.
type Memories interface {
	Search(ctx context.Context, query string, opts cogniz.SearchOptions) ([]memory.Record, error)
	ListRecent(ctx context.Context, limit int, projectID string) ([]memory.Record, error)
	Store(ctx context.Context, content string, opts cogniz.StoreOptions) (string, error)
	ListProjects(ctx context.Context) ([]memory.Project, error)
}

type Config struct {
	// Memories serves every tool
	Memories Memories

	// Tracker records tool usage. Optional.
	Tracker *telemetry.Tracker

	// Noop for empty MCP server
	Noop bool

	// Logger is the configured slog logger
	Logger *slog.Logger

	// Now stamps relative times. Defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the memory tools.
func NewServer(c Config) (*Server, error) {
	if c.Now == nil {
		c.Now = time.Now
	}

	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "cogniz",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)
	s.mcpServer = mcpServer

	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	if c.Noop {
		// no tools: MCP capabilities are disabled
		return s, nil
	}

	if c.Memories == nil {
		return nil, errors.New("memories client is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        searchToolName,
		Description: searchDescription,
	}, s.handleSearch)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        recentToolName,
		Description: recentDescription,
	}, s.handleRecent)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        storeToolName,
		Description: storeDescription,
	}, s.handleStore)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        projectsToolName,
		Description: projectsDescription,
	}, s.handleProjects)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// errorResult is a tool failure reported to the agent.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

// jsonResult renders output as the tool's text content.
func jsonResult(output any) *mcp.CallToolResult {
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return errorResult("Failed to serialize results: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}
}
