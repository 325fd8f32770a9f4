package cogniz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

const skillsPath = "/cogniz/v1/skills"

// Skill is a server-side operation that can be run against a project.
type Skill struct {
	ID          string `json:"skill_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`

	// AccessLevel is free, premium or enterprise.
	AccessLevel string `json:"access_level"`
}

// SkillExecution is the input of ExecuteSkill.
type SkillExecution struct {
	Input   string
	Context map[string]any

	// ProjectID overrides the active project.
	ProjectID string
}

type skillRequest struct {
	Input     string         `json:"input"`
	Context   map[string]any `json:"context,omitempty"`
	ProjectID string         `json:"project_id"`
}

// SkillMetadata reports execution cost.
type SkillMetadata struct {
	ExecutionTimeMS float64 `json:"execution_time_ms"`
	TokensUsed      *int64  `json:"tokens_used,omitempty"`
}

// SkillResult is the outcome of a skill run.
type SkillResult struct {
	Success  bool           `json:"success"`
	Output   string         `json:"output"`
	Metadata *SkillMetadata `json:"metadata,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// ListSkills returns the skills available to the configured account.
func (c *Client) ListSkills(ctx context.Context) ([]Skill, error) {
	secrets, err := c.requireSecrets()
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, secrets, http.MethodGet, skillsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newRemoteError(resp.status, resp.body, "Failed to load skills")
	}

	var body struct {
		Skills []Skill `json:"skills"`
	}
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return nil, &RemoteError{Status: resp.status, Message: "Failed to load skills: response could not be parsed.", Err: err}
	}

	return body.Skills, nil
}

// GetSkill returns one skill by id.
func (c *Client) GetSkill(ctx context.Context, id string) (*Skill, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptySkillID
	}

	secrets, err := c.requireSecrets()
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, secrets, http.MethodGet, skillsPath+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newRemoteError(resp.status, resp.body, "Failed to load skill")
	}

	skill := &Skill{}
	if err := json.Unmarshal(resp.body, skill); err != nil {
		return nil, &RemoteError{Status: resp.status, Message: "Failed to load skill: response could not be parsed.", Err: err}
	}

	return skill, nil
}

// ExecuteSkill runs a skill. A rejected run is reported in the result, not
// as an error; errors mean the run could not be attempted or read.
func (c *Client) ExecuteSkill(ctx context.Context, id string, exec SkillExecution) (*SkillResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptySkillID
	}

	secrets, err := c.requireSecrets()
	if err != nil {
		return nil, err
	}

	active, err := c.activeProject(&secrets.Connection, exec.ProjectID, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, secrets, http.MethodPost, skillsPath+"/"+url.PathEscape(id)+"/execute", nil, skillRequest{
		Input:     exec.Input,
		Context:   exec.Context,
		ProjectID: active.ProjectID,
	})
	if err != nil {
		return nil, err
	}

	result := &SkillResult{}
	decodeErr := json.Unmarshal(resp.body, result)

	if !resp.ok() {
		msg := result.Error
		if decodeErr != nil || msg == "" {
			msg = "Skill execution failed"
		}
		return &SkillResult{Success: false, Error: msg}, nil
	}

	if decodeErr != nil {
		return nil, &RemoteError{Status: resp.status, Message: "Skill execution failed: response could not be parsed.", Err: decodeErr}
	}

	return result, nil
}
