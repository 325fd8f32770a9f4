package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/cogniz/pkg/cogniz"
	"github.com/papercomputeco/cogniz/pkg/connection"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

// StatusResponse reports whether the bridge can reach Cogniz.
type StatusResponse struct {
	Configured  bool   `json:"configured"`
	ProjectID   string `json:"project_id,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
}

// StoreRequest is the body of POST /v1/memories.
type StoreRequest struct {
	Content     string         `json:"content"`
	Category    string         `json:"category,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ProjectID   string         `json:"project_id,omitempty"`
	ProjectName string         `json:"project_name,omitempty"`
}

// StoreResponse is returned after a memory is stored.
type StoreResponse struct {
	MemoryID string `json:"memory_id"`
}

// SelectProjectRequest is the body of PUT /v1/projects/active.
type SelectProjectRequest struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name,omitempty"`
}

// ExecuteRequest is the body of POST /v1/skills/:id/execute.
type ExecuteRequest struct {
	Input     string         `json:"input"`
	Context   map[string]any `json:"context,omitempty"`
	ProjectID string         `json:"project_id,omitempty"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleStatus reports the configuration state and active project.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	if !s.service.HasConfiguration(c.Context()) {
		return c.JSON(StatusResponse{})
	}

	active, err := s.service.ActiveProject("", "")
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(StatusResponse{
		Configured:  true,
		ProjectID:   active.ProjectID,
		ProjectName: active.ProjectName,
	})
}

// parseLimit reads the optional positive limit query parameter.
func parseLimit(c *fiber.Ctx) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, false
	}
	return limit, true
}

// handleListRecent handles GET /v1/memories.
// Query parameters:
//   - limit (optional, default 10)
//   - project_id (optional): overrides the active project
func (s *Server) handleListRecent(c *fiber.Ctx) error {
	limit, ok := parseLimit(c)
	if !ok {
		return badRequest(c, "limit must be a positive integer")
	}

	records, err := s.service.ListRecent(c.Context(), limit, c.Query("project_id"))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(noRecords(records))
}

// handleSearch handles GET /v1/search.
// Query parameters:
//   - query (optional): empty lists everything
//   - limit (optional, default 10)
//   - project_id (optional): overrides the active project
func (s *Server) handleSearch(c *fiber.Ctx) error {
	limit, ok := parseLimit(c)
	if !ok {
		return badRequest(c, "limit must be a positive integer")
	}

	query := c.Query("query")
	records, err := s.service.Search(c.Context(), query, cogniz.SearchOptions{
		Limit:     limit,
		ProjectID: c.Query("project_id"),
	})
	if err != nil {
		return s.fail(c, err)
	}

	s.config.Tracker.Track(c.Context(), telemetry.EventSearchMemories, map[string]any{
		"queryLength": len(strings.TrimSpace(query)),
		"via":         "api",
	})

	return c.JSON(noRecords(records))
}

// handleStore handles POST /v1/memories.
func (s *Server) handleStore(c *fiber.Ctx) error {
	var req StoreRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	id, err := s.service.Store(c.Context(), req.Content, cogniz.StoreOptions{
		Category:    req.Category,
		Metadata:    req.Metadata,
		ProjectID:   req.ProjectID,
		ProjectName: req.ProjectName,
	})
	if err != nil {
		return s.fail(c, err)
	}

	s.config.Tracker.Track(c.Context(), telemetry.EventStoreMemory, map[string]any{
		"hasMemoryId": id != "",
		"origin":      "api",
	})

	return c.Status(fiber.StatusCreated).JSON(StoreResponse{MemoryID: id})
}

// handleRefresh drops the cached listing.
func (s *Server) handleRefresh(c *fiber.Ctx) error {
	s.service.ForceRefresh()
	return c.SendStatus(fiber.StatusNoContent)
}

// handleListProjects handles GET /v1/projects.
func (s *Server) handleListProjects(c *fiber.Ctx) error {
	projects, err := s.service.ListProjects(c.Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(projects)
}

// handleSelectProject handles PUT /v1/projects/active.
func (s *Server) handleSelectProject(c *fiber.Ctx) error {
	var req SelectProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.ProjectID) == "" {
		return badRequest(c, "project_id is required")
	}

	selected := connection.SelectedProject{
		ProjectID:   strings.TrimSpace(req.ProjectID),
		ProjectName: strings.TrimSpace(req.ProjectName),
	}
	if err := s.service.SelectProject(selected); err != nil {
		return s.fail(c, err)
	}

	s.config.Tracker.Track(c.Context(), telemetry.EventSelectProject, map[string]any{"via": "api"})

	return c.JSON(selected)
}

// handleListSkills handles GET /v1/skills.
func (s *Server) handleListSkills(c *fiber.Ctx) error {
	skills, err := s.service.ListSkills(c.Context())
	if err != nil {
		return s.fail(c, err)
	}
	if skills == nil {
		skills = []cogniz.Skill{}
	}
	return c.JSON(skills)
}

// handleGetSkill handles GET /v1/skills/:id.
func (s *Server) handleGetSkill(c *fiber.Ctx) error {
	skill, err := s.service.GetSkill(c.Context(), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(skill)
}

// handleExecuteSkill handles POST /v1/skills/:id/execute. A rejected run is
// still a 200 with success=false.
func (s *Server) handleExecuteSkill(c *fiber.Ctx) error {
	var req ExecuteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	id := c.Params("id")
	result, err := s.service.ExecuteSkill(c.Context(), id, cogniz.SkillExecution{
		Input:     req.Input,
		Context:   req.Context,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		return s.fail(c, err)
	}

	s.config.Tracker.Track(c.Context(), telemetry.EventExecuteSkill, map[string]any{
		"skillId": id,
		"success": result.Success,
	})

	return c.JSON(result)
}
