package cogniz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/papercomputeco/cogniz/pkg/connection"
	"github.com/papercomputeco/cogniz/pkg/memory"
)

// ViewLimit is how many memories a view shows.
const ViewLimit = 50

// View is everything the memory browser shows at once.
type View struct {
	Configured bool
	Projects   []memory.Project
	Active     connection.SelectedProject
	Items      []memory.Record

	// ProjectError is set when projects could not be listed and the
	// connection's project is shown alone.
	ProjectError string

	// MemoryError is set when the memories could not be listed.
	MemoryError string

	LoadedAt time.Time
}

// LoadView lists projects, settles the selected project and lists its recent
// memories. Listing failures are reported in the View; the error is only
// for failures to read or persist settings.
func (c *Client) LoadView(ctx context.Context) (*View, error) {
	view := &View{LoadedAt: c.now()}

	if !c.HasConfiguration(ctx) {
		return view, nil
	}

	conn, err := c.settings.Connection()
	if err != nil {
		return nil, fmt.Errorf("loading connection: %w", err)
	}
	if conn == nil {
		return view, nil
	}
	view.Configured = true

	fallback := []memory.Project{{ID: conn.ProjectID, Name: conn.ProjectName}}
	projects, err := c.ListProjects(ctx)
	if err != nil {
		view.ProjectError = err.Error()
		projects = fallback
	}
	if len(projects) == 0 {
		projects = fallback
	}
	view.Projects = projects

	active, err := c.settleSelection(conn, projects)
	if err != nil {
		return nil, err
	}
	view.Active = active

	items, err := c.ListRecent(ctx, ViewLimit, active.ProjectID)
	switch {
	case errors.Is(err, ErrConfigurationMissing):
		view.MemoryError = "Configure Cogniz to load memories."
	case err != nil:
		view.MemoryError = err.Error()
	default:
		view.Items = items
	}

	return view, nil
}

// settleSelection makes sure the stored selection names one of projects,
// defaulting to the connection's project, then the first listed one.
func (c *Client) settleSelection(conn *connection.Connection, projects []memory.Project) (connection.SelectedProject, error) {
	selected, err := c.settings.SelectedProject()
	if err != nil {
		return connection.SelectedProject{}, fmt.Errorf("loading selected project: %w", err)
	}

	var active connection.SelectedProject
	if selected != nil && selected.ProjectID != "" {
		active = *selected
	} else {
		active = connection.SelectedProject{ProjectID: conn.ProjectID, ProjectName: conn.ProjectName}
		if err := c.settings.SetSelectedProject(&active); err != nil {
			return connection.SelectedProject{}, fmt.Errorf("saving selected project: %w", err)
		}
	}

	for _, p := range projects {
		if p.ID == active.ProjectID {
			return active, nil
		}
	}

	active = connection.SelectedProject{ProjectID: projects[0].ID, ProjectName: projects[0].Name}
	if err := c.settings.SetSelectedProject(&active); err != nil {
		return connection.SelectedProject{}, fmt.Errorf("saving selected project: %w", err)
	}
	return active, nil
}

// SelectProject makes p the session's project and drops the cached listing.
func (c *Client) SelectProject(p connection.SelectedProject) error {
	if err := c.settings.SetSelectedProject(&p); err != nil {
		return fmt.Errorf("saving selected project: %w", err)
	}
	c.ForceRefresh()
	return nil
}
