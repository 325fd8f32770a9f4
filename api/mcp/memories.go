package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/cogniz/pkg/cogniz"
	"github.com/papercomputeco/cogniz/pkg/memory"
	"github.com/papercomputeco/cogniz/pkg/render"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

var (
	searchToolName    = "memory_search"
	searchDescription = "Search Cogniz memories. Returns the most relevant stored memories for the query, each with a short title and snippet. An empty query lists the newest memories."

	recentToolName    = "memory_recent"
	recentDescription = "List the most recent Cogniz memories of the active project, or of project_id when given."

	storeToolName    = "memory_store"
	storeDescription = "Store text as a new Cogniz memory in the active project. Use this to persist facts, decisions or snippets worth recalling later."

	projectsToolName    = "memory_projects"
	projectsDescription = "List the Cogniz projects available to the configured API key."
)

// SearchInput represents the input arguments for the memory_search tool.
type SearchInput struct {
	Query     string `json:"query" jsonschema:"the search query text; empty lists everything"`
	Limit     int    `json:"limit,omitempty" jsonschema:"number of results to return (default: 10)"`
	ProjectID string `json:"project_id,omitempty" jsonschema:"project to search instead of the active one"`
}

// RecentInput represents the input arguments for the memory_recent tool.
type RecentInput struct {
	Limit     int    `json:"limit,omitempty" jsonschema:"number of memories to return (default: 10)"`
	ProjectID string `json:"project_id,omitempty" jsonschema:"project to list instead of the active one"`
}

// StoreInput represents the input arguments for the memory_store tool.
type StoreInput struct {
	Content   string         `json:"content" jsonschema:"the text to remember"`
	Category  string         `json:"category,omitempty" jsonschema:"optional category such as notes or decisions"`
	Metadata  map[string]any `json:"metadata,omitempty" jsonschema:"optional metadata stored with the memory"`
	ProjectID string         `json:"project_id,omitempty" jsonschema:"project to store into instead of the active one"`
}

// MemoryResult is one memory as returned to agents.
type MemoryResult struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Snippet   string   `json:"snippet"`
	Tags      []string `json:"tags,omitempty"`
	Relevance *float64 `json:"relevance,omitempty"`
	StoredAt  string   `json:"stored_at,omitempty"`
	Content   string   `json:"content"`
}

// MemoriesOutput represents the output of the search and recent tools.
type MemoriesOutput struct {
	Query   string         `json:"query,omitempty"`
	Results []MemoryResult `json:"results"`
	Count   int            `json:"count"`
}

// StoreOutput represents the output of the memory_store tool.
type StoreOutput struct {
	MemoryID string `json:"memory_id,omitempty"`
	Stored   bool   `json:"stored"`
}

// ProjectsOutput represents the output of the memory_projects tool.
type ProjectsOutput struct {
	Projects []memory.Project `json:"projects"`
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, MemoriesOutput, error) {
	s.config.Logger.Debug("MCP memory search", "query", input.Query, "limit", input.Limit)

	records, err := s.config.Memories.Search(ctx, input.Query, cogniz.SearchOptions{
		Limit:     input.Limit,
		ProjectID: input.ProjectID,
	})
	if err != nil {
		return errorResult("Search failed: %v", err), MemoriesOutput{}, nil
	}

	s.config.Tracker.Track(ctx, telemetry.EventSearchMemories, map[string]any{
		"queryLength": len(strings.TrimSpace(input.Query)),
		"via":         "mcp",
	})

	output := s.memoriesOutput(input.Query, records)
	return jsonResult(output), output, nil
}

func (s *Server) handleRecent(ctx context.Context, _ *mcp.CallToolRequest, input RecentInput) (*mcp.CallToolResult, MemoriesOutput, error) {
	records, err := s.config.Memories.ListRecent(ctx, input.Limit, input.ProjectID)
	if err != nil {
		return errorResult("Listing memories failed: %v", err), MemoriesOutput{}, nil
	}

	output := s.memoriesOutput("", records)
	return jsonResult(output), output, nil
}

func (s *Server) handleStore(ctx context.Context, _ *mcp.CallToolRequest, input StoreInput) (*mcp.CallToolResult, StoreOutput, error) {
	if strings.TrimSpace(input.Content) == "" {
		return errorResult("content is required"), StoreOutput{}, nil
	}

	id, err := s.config.Memories.Store(ctx, input.Content, cogniz.StoreOptions{
		Category:  input.Category,
		Metadata:  input.Metadata,
		ProjectID: input.ProjectID,
	})
	if err != nil {
		return errorResult("Storing memory failed: %v", err), StoreOutput{}, nil
	}

	s.config.Tracker.Track(ctx, telemetry.EventStoreMemory, map[string]any{
		"hasMemoryId": id != "",
		"origin":      "mcp",
	})

	output := StoreOutput{MemoryID: id, Stored: true}
	return jsonResult(output), output, nil
}

func (s *Server) handleProjects(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, ProjectsOutput, error) {
	projects, err := s.config.Memories.ListProjects(ctx)
	if err != nil {
		return errorResult("Listing projects failed: %v", err), ProjectsOutput{}, nil
	}

	output := ProjectsOutput{Projects: projects}
	return jsonResult(output), output, nil
}

func (s *Server) memoriesOutput(query string, records []memory.Record) MemoriesOutput {
	now := s.config.Now()
	results := make([]MemoryResult, 0, len(records))
	for _, rec := range records {
		card := render.NewCard(rec, now, render.CardLimits)
		results = append(results, MemoryResult{
			ID:        rec.ID,
			Title:     card.Title,
			Snippet:   card.Snippet,
			Tags:      card.Tags,
			Relevance: rec.Relevance,
			StoredAt:  rec.StoredAt,
			Content:   rec.Content,
		})
	}

	return MemoriesOutput{Query: query, Results: results, Count: len(results)}
}
