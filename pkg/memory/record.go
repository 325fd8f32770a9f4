// Package memory defines the canonical memory record and turns the loosely
// shaped JSON returned by Cogniz into it.
package memory

// Record is one stored memory as shown to the user.
type Record struct {
	// ID is the upstream memory_id. When the server omits it, ID holds the
	// content, so two distinct memories with identical text share an ID.
	ID string `json:"id"`

	// Content is the raw captured text. Never blank.
	Content string `json:"content"`

	Category  string         `json:"category,omitempty"`
	Relevance *float64       `json:"relevance,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	StoredAt  string         `json:"stored_at,omitempty"`
}

// Project is a namespace that scopes memories.
type Project struct {
	ID          string `json:"project_id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// DisplayName is the project name, or its id when unnamed.
func (p Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
