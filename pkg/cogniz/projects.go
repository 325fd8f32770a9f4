package cogniz

import (
	"context"
	"net/http"

	"github.com/papercomputeco/cogniz/pkg/memory"
)

const projectsPath = "/memory/v1/projects"

// ListProjects returns the projects the API key can access. An empty list is
// an error wrapping ErrNoProjects.
func (c *Client) ListProjects(ctx context.Context) ([]memory.Project, error) {
	secrets, err := c.requireSecrets()
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, secrets, http.MethodGet, projectsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newRemoteError(resp.status, resp.body, "Failed to load projects")
	}

	data, err := decodeBody(resp.status, resp.body, "Unexpected response from Cogniz while loading projects.")
	if err != nil {
		return nil, err
	}

	projects := memory.ParseProjects(data)
	if len(projects) == 0 {
		return nil, &RemoteError{
			Status:  resp.status,
			Message: ErrNoProjects.Error(),
			Err:     ErrNoProjects,
		}
	}

	return projects, nil
}
