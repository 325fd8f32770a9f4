package testutils

import (
	"github.com/papercomputeco/cogniz/pkg/connection"
)

// MockSettings is an in-memory cogniz.Settings.
type MockSettings struct {
	// Stored is returned by Secrets; its Connection by Connection.
	Stored *connection.Secrets

	// Selected is the session project override.
	Selected *connection.SelectedProject

	// Err causes Secrets and Connection to fail.
	Err error
}

// NewMockSettings returns settings for a complete connection to baseURL with
// project p1 ("Default") and key "secret-key".
func NewMockSettings(baseURL string) *MockSettings {
	return &MockSettings{Stored: &connection.Secrets{
		Connection: connection.Connection{BaseURL: baseURL, ProjectID: "p1", ProjectName: "Default"},
		APIKey:     "secret-key",
	}}
}

func (m *MockSettings) Secrets() (*connection.Secrets, error) {
	return m.Stored, m.Err
}

func (m *MockSettings) Connection() (*connection.Connection, error) {
	if m.Err != nil || m.Stored == nil {
		return nil, m.Err
	}
	conn := m.Stored.Connection
	return &conn, nil
}

func (m *MockSettings) SelectedProject() (*connection.SelectedProject, error) {
	return m.Selected, nil
}

func (m *MockSettings) SetSelectedProject(p *connection.SelectedProject) error {
	if p == nil || p.ProjectID == "" {
		m.Selected = nil
		return nil
	}
	cp := *p
	m.Selected = &cp
	return nil
}
