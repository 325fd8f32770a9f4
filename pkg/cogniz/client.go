// Package cogniz is the HTTP client for the Cogniz memory service.
package cogniz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/papercomputeco/cogniz/pkg/connection"
	"github.com/papercomputeco/cogniz/pkg/logger"
	"github.com/papercomputeco/cogniz/pkg/memory/cache"
)

const (
	// DefaultPlatform is sent as X-Memory-Platform-Client.
	DefaultPlatform = "vscode-extension"

	// DefaultLimit bounds searches and recent listings without a limit.
	DefaultLimit = 10

	// DashboardURL is the Cogniz web dashboard.
	DashboardURL = "https://cogniz.online/dashboard"
)

// Settings supplies the stored connection and session state.
// *connection.Service implements it.
type Settings interface {
	Secrets() (*connection.Secrets, error)
	Connection() (*connection.Connection, error)
	SelectedProject() (*connection.SelectedProject, error)
	SetSelectedProject(p *connection.SelectedProject) error
}

// Client talks to one Cogniz server on behalf of one user.
type Client struct {
	settings   Settings
	httpClient *http.Client
	logger     *slog.Logger
	cache      *cache.Cache
	platform   string
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCache shares a cache between clients. Each client otherwise gets its
// own.
func WithCache(ch *cache.Cache) Option {
	return func(c *Client) {
		if ch != nil {
			c.cache = ch
		}
	}
}

// WithPlatform sets the X-Memory-Platform-Client header. Blank values are
// ignored.
func WithPlatform(platform string) Option {
	return func(c *Client) {
		if platform != "" {
			c.platform = platform
		}
	}
}

// WithClock replaces time.Now, used for view timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Client reading its connection from settings.
func New(settings Settings, opts ...Option) *Client {
	c := &Client{
		settings:   settings,
		httpClient: http.DefaultClient,
		logger:     logger.Nop(),
		platform:   DefaultPlatform,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.New()
	}
	return c
}

// Cache exposes the client's listing cache.
func (c *Client) Cache() *cache.Cache {
	return c.cache
}

// HasConfiguration reports whether the API key, base URL and project id
// are all present. Read failures count as not configured.
func (c *Client) HasConfiguration(_ context.Context) bool {
	secrets, err := c.settings.Secrets()
	if err != nil || secrets == nil {
		return false
	}
	return secrets.APIKey != "" && secrets.BaseURL != "" && secrets.ProjectID != ""
}

// ActiveProject resolves the project an operation targets: the explicit
// projectID when given, else the selected project, else the connection's
// default project.
func (c *Client) ActiveProject(projectID, projectName string) (connection.SelectedProject, error) {
	conn, err := c.settings.Connection()
	if err != nil {
		return connection.SelectedProject{}, fmt.Errorf("loading connection: %w", err)
	}
	if conn == nil {
		return connection.SelectedProject{}, ErrConfigurationMissing
	}
	return c.activeProject(conn, projectID, projectName)
}

func (c *Client) activeProject(conn *connection.Connection, projectID, projectName string) (connection.SelectedProject, error) {
	if projectID != "" {
		return connection.SelectedProject{ProjectID: projectID, ProjectName: projectName}, nil
	}

	selected, err := c.settings.SelectedProject()
	if err != nil {
		return connection.SelectedProject{}, fmt.Errorf("loading selected project: %w", err)
	}
	if selected != nil && selected.ProjectID != "" {
		return *selected, nil
	}

	return connection.SelectedProject{ProjectID: conn.ProjectID, ProjectName: conn.ProjectName}, nil
}

func (c *Client) requireSecrets() (*connection.Secrets, error) {
	secrets, err := c.settings.Secrets()
	if err != nil {
		return nil, fmt.Errorf("loading connection: %w", err)
	}
	if secrets == nil {
		return nil, ErrConfigurationMissing
	}
	return secrets, nil
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// do sends one request to path under the server's REST root. body, when
// non-nil, is sent as JSON.
func (c *Client) do(ctx context.Context, secrets *connection.Secrets, method, path string, query url.Values, body any) (response, error) {
	endpoint := BuildEndpoint(secrets.BaseURL, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return response{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+secrets.APIKey)
	req.Header.Set("X-Memory-Platform-Client", c.platform)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("cogniz request", "method", method, "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("sending request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("reading response from %s: %w", path, err)
	}

	c.logger.Debug("cogniz response", "url", endpoint, "status", resp.StatusCode, "bytes", len(raw))

	return response{status: resp.StatusCode, body: raw}, nil
}
