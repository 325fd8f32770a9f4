// Package connection persists the Cogniz connection, the selected project and
// the API key, and exposes them to the client.
package connection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/papercomputeco/cogniz/pkg/config"
	"github.com/papercomputeco/cogniz/pkg/credentials"
)

// ErrNoBaseURL is returned when storing a key before a base URL is known.
var ErrNoBaseURL = errors.New("base URL is not configured")

// Service reads and writes connection state in config.toml and the API key
// in credentials.toml.
type Service struct {
	cfger *config.Configer
	creds *credentials.Manager
}

// NewService resolves the .cogniz/ directory (override first) and returns a
// Service over it.
func NewService(configDir string) (*Service, error) {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	creds, err := credentials.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	return &Service{cfger: cfger, creds: creds}, nil
}

// ConfigPath is the config.toml this service reads.
func (s *Service) ConfigPath() string {
	return s.cfger.GetTarget()
}

// Connection returns the stored connection, or nil when the base URL or
// project id is missing.
func (s *Service) Connection() (*Connection, error) {
	cfg, err := s.cfger.LoadConfig()
	if err != nil {
		return nil, err
	}

	conn := &Connection{
		BaseURL:     NormalizeBaseURL(cfg.Connection.BaseURL),
		ProjectID:   strings.TrimSpace(cfg.Connection.ProjectID),
		ProjectName: strings.TrimSpace(cfg.Connection.ProjectName),
	}
	if !conn.Configured() {
		return nil, nil
	}

	return conn, nil
}

// UpdateConnection merges u into the stored connection. A blank project name
// keeps the existing one.
func (s *Service) UpdateConnection(u Update) error {
	return s.cfger.Update(func(cfg *config.Config) error {
		if u.BaseURL != nil {
			cfg.Connection.BaseURL = NormalizeBaseURL(*u.BaseURL)
		}
		if u.ProjectID != nil {
			cfg.Connection.ProjectID = strings.TrimSpace(*u.ProjectID)
		}
		if u.ProjectName != nil {
			if name := strings.TrimSpace(*u.ProjectName); name != "" {
				cfg.Connection.ProjectName = name
			}
		}
		return nil
	})
}

// ClearConnection removes the connection, the selected project and the key
// stored for the current server.
func (s *Service) ClearConnection() error {
	cfg, err := s.cfger.LoadConfig()
	if err != nil {
		return err
	}

	if base := NormalizeBaseURL(cfg.Connection.BaseURL); base != "" {
		if err := s.creds.RemoveKey(base); err != nil {
			return fmt.Errorf("removing API key: %w", err)
		}
	}

	cfg.Connection = config.ConnectionConfig{}
	cfg.Session = config.SessionConfig{}

	return s.cfger.SaveConfig(cfg)
}

func (s *Service) baseURL() (string, error) {
	cfg, err := s.cfger.LoadConfig()
	if err != nil {
		return "", err
	}
	return NormalizeBaseURL(cfg.Connection.BaseURL), nil
}

// APIKey returns the key for the configured server, honoring
// $COGNIZ_API_KEY. Empty when none is known.
func (s *Service) APIKey() (string, error) {
	base, err := s.baseURL()
	if err != nil {
		return "", err
	}
	if base == "" {
		return "", nil
	}
	return s.creds.ResolveKey(base)
}

// SetAPIKey stores a trimmed key for the configured server.
func (s *Service) SetAPIKey(key string) error {
	base, err := s.baseURL()
	if err != nil {
		return err
	}
	if base == "" {
		return ErrNoBaseURL
	}
	return s.creds.SetKey(base, strings.TrimSpace(key))
}

// ClearAPIKey removes the key stored for the configured server.
func (s *Service) ClearAPIKey() error {
	base, err := s.baseURL()
	if err != nil {
		return err
	}
	if base == "" {
		return nil
	}
	return s.creds.RemoveKey(base)
}

// HasAPIKey reports whether a key is available for the configured server.
func (s *Service) HasAPIKey() bool {
	key, err := s.APIKey()
	return err == nil && key != ""
}

// IsConfigured reports whether the base URL and project id are set.
func (s *Service) IsConfigured() bool {
	conn, err := s.Connection()
	return err == nil && conn.Configured()
}

// Secrets returns the connection with its key, or nil when either is missing.
func (s *Service) Secrets() (*Secrets, error) {
	conn, err := s.Connection()
	if err != nil || conn == nil {
		return nil, err
	}

	key, err := s.creds.ResolveKey(conn.BaseURL)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, nil
	}

	return &Secrets{Connection: *conn, APIKey: key}, nil
}

// SelectedProject returns the session override, or nil when none is set.
func (s *Service) SelectedProject() (*SelectedProject, error) {
	cfg, err := s.cfger.LoadConfig()
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(cfg.Session.ProjectID)
	if id == "" {
		return nil, nil
	}

	return &SelectedProject{ProjectID: id, ProjectName: strings.TrimSpace(cfg.Session.ProjectName)}, nil
}

// SetSelectedProject stores p as the session override. A nil project or a
// blank id clears it.
func (s *Service) SetSelectedProject(p *SelectedProject) error {
	return s.cfger.Update(func(cfg *config.Config) error {
		if p == nil || strings.TrimSpace(p.ProjectID) == "" {
			cfg.Session = config.SessionConfig{}
			return nil
		}
		cfg.Session = config.SessionConfig{
			ProjectID:   strings.TrimSpace(p.ProjectID),
			ProjectName: strings.TrimSpace(p.ProjectName),
		}
		return nil
	})
}
