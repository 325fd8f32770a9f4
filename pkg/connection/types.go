package connection

import "strings"

// Connection is the Cogniz server and the project used when nothing else
// is selected.
type Connection struct {
	BaseURL     string `json:"base_url"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name,omitempty"`
}

// Configured reports whether both the base URL and project id are set.
func (c *Connection) Configured() bool {
	return c != nil && c.BaseURL != "" && c.ProjectID != ""
}

// Secrets is a complete connection plus its API key. It only exists as a
// whole.
type Secrets struct {
	Connection
	APIKey string `json:"-"`
}

// SelectedProject overrides the connection's default project for the
// current session.
type SelectedProject struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name,omitempty"`
}

// Update is a partial connection change. Nil fields keep the stored value.
type Update struct {
	BaseURL     *string
	ProjectID   *string
	ProjectName *string
}

// NormalizeBaseURL trims whitespace and every trailing slash.
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
