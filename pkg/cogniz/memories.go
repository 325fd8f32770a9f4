package cogniz

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/papercomputeco/cogniz/pkg/memory"
	"github.com/papercomputeco/cogniz/pkg/memory/cache"
)

const (
	storePath  = "/memory/v1/store"
	searchPath = "/memory/v1/search"
)

// StoreOptions adjusts a Store call. Empty fields are omitted or resolved
// from the active project.
type StoreOptions struct {
	Category    string
	Metadata    map[string]any
	ProjectID   string
	ProjectName string
}

type storeRequest struct {
	Content     string         `json:"content"`
	ProjectID   string         `json:"project_id"`
	ProjectName string         `json:"project_name,omitempty"`
	Category    string         `json:"category,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Store saves content as a new memory and returns its id, which is empty
// when the server does not report one.
func (c *Client) Store(ctx context.Context, content string, opts StoreOptions) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}

	secrets, err := c.requireSecrets()
	if err != nil {
		return "", err
	}

	active, err := c.activeProject(&secrets.Connection, opts.ProjectID, opts.ProjectName)
	if err != nil {
		return "", err
	}
	if opts.ProjectName != "" {
		active.ProjectName = opts.ProjectName
	}

	resp, err := c.do(ctx, secrets, http.MethodPost, storePath, nil, storeRequest{
		Content:     content,
		ProjectID:   active.ProjectID,
		ProjectName: active.ProjectName,
		Category:    opts.Category,
		Metadata:    opts.Metadata,
	})
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", newRemoteError(resp.status, resp.body, "Failed to store memory")
	}

	// the memory exists now even if the body turns out to be unreadable
	c.cache.Invalidate()

	data, err := decodeBody(resp.status, resp.body, "Unexpected response from Cogniz.")
	if err != nil {
		return "", err
	}

	obj, _ := data.(map[string]any)
	return memory.CoerceString(obj["memory_id"]), nil
}

// SearchOptions adjusts a Search call.
type SearchOptions struct {
	// Limit caps the results. Non-positive means DefaultLimit.
	Limit int

	// ProjectID overrides the active project.
	ProjectID string
}

// Search queries memories in a project. A blank query lists everything and
// refreshes the recent-memory cache.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]memory.Record, error) {
	secrets, err := c.requireSecrets()
	if err != nil {
		return nil, err
	}

	active, err := c.activeProject(&secrets.Connection, opts.ProjectID, "")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) == "" {
		query = cache.Wildcard
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	// reserved before the request so a store or refresh issued meanwhile
	// wins over this result
	gen := c.cache.Reserve()

	params := url.Values{}
	params.Set("project_id", active.ProjectID)
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))

	resp, err := c.do(ctx, secrets, http.MethodGet, searchPath, params, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newRemoteError(resp.status, resp.body, "Failed to search memories")
	}

	data, err := decodeBody(resp.status, resp.body, "Unexpected response from Cogniz while searching.")
	if err != nil {
		return nil, err
	}

	records := memory.Deduplicate(memory.NormalizeAll(searchResults(data)))
	c.logger.Debug("search results", "project_id", active.ProjectID, "query", query, "count", len(records))

	if query == cache.Wildcard {
		if !c.cache.Put(gen, active.ProjectID, query, records) {
			c.logger.Debug("discarded stale listing", "project_id", active.ProjectID)
		}
	}

	return records, nil
}

// searchResults pulls the result objects out of a decoded search body.
func searchResults(data any) []map[string]any {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	list, _ := obj["results"].([]any)

	results := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			results = append(results, m)
		}
	}
	return results
}

// ListRecent returns up to limit memories of a project, served from the
// cache while it is fresh.
func (c *Client) ListRecent(ctx context.Context, limit int, projectID string) ([]memory.Record, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	secrets, err := c.requireSecrets()
	if err != nil {
		return nil, err
	}

	active, err := c.activeProject(&secrets.Connection, projectID, "")
	if err != nil {
		return nil, err
	}

	if items, ok := c.cache.Lookup(active.ProjectID, limit); ok {
		c.logger.Debug("serving cached memories", "project_id", active.ProjectID, "count", len(items))
		return items, nil
	}

	items, err := c.Search(ctx, cache.Wildcard, SearchOptions{Limit: limit, ProjectID: active.ProjectID})
	if err != nil {
		return nil, err
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// ForceRefresh drops the cached listing.
func (c *Client) ForceRefresh() {
	c.cache.Invalidate()
}
