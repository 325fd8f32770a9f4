package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/cogniz/pkg/dotdir"
)

const (
	credentialsFile = "credentials.toml"

	currentVersion = 0

	// EnvAPIKey overrides any stored key for every server.
	EnvAPIKey = "COGNIZ_API_KEY"
)

// Manager manages reading and writing credentials.toml in the .cogniz/ directory.
type Manager struct {
	ddm        *dotdir.Manager
	targetPath string
}

// NewManager creates a new credentials Manager. If override is non-empty it is
// used as the .cogniz/ directory; otherwise the standard dotdir resolution applies.
func NewManager(override string) (*Manager, error) {
	mgr := &Manager{}
	mgr.ddm = dotdir.NewManager()

	target, err := mgr.ddm.Target(override)
	if err != nil {
		return nil, err
	}

	mgr.targetPath = filepath.Join(target, credentialsFile)

	return mgr, nil
}

// ServerKey reduces a base URL to the key its credential is stored under:
// lowercased, without trailing slashes or a trailing /wp-json.
func ServerKey(baseURL string) string {
	key := strings.ToLower(strings.TrimSpace(baseURL))
	key = strings.TrimRight(key, "/")
	key = strings.TrimSuffix(key, "/wp-json")
	return strings.TrimRight(key, "/")
}

// Load reads credentials.toml from the target directory.
// Returns an empty Credentials if the file does not exist.
func (m *Manager) Load() (*Credentials, error) {
	data, err := os.ReadFile(m.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{
				Version: currentVersion,
				Servers: make(map[string]ServerCredential),
			}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	creds := &Credentials{}
	if err := toml.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	if creds.Servers == nil {
		creds.Servers = make(map[string]ServerCredential)
	}

	return creds, nil
}

// Save writes credentials to credentials.toml with 0600 permissions.
func (m *Manager) Save(creds *Credentials) error {
	if creds == nil {
		return errors.New("cannot save nil credentials")
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(creds); err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.WriteFile(m.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}

	return nil
}

// SetKey stores an API key for the server at baseURL.
func (m *Manager) SetKey(baseURL, key string) error {
	server := ServerKey(baseURL)
	if server == "" {
		return errors.New("cannot store a key without a base URL")
	}

	creds, err := m.Load()
	if err != nil {
		return err
	}

	creds.Servers[server] = ServerCredential{APIKey: key}

	return m.Save(creds)
}

// GetKey returns the stored API key for the server at baseURL.
// Returns an empty string if no key is stored.
func (m *Manager) GetKey(baseURL string) (string, error) {
	creds, err := m.Load()
	if err != nil {
		return "", err
	}

	sc, ok := creds.Servers[ServerKey(baseURL)]
	if !ok {
		return "", nil
	}

	return sc.APIKey, nil
}

// ResolveKey returns $COGNIZ_API_KEY when set, otherwise the stored key.
func (m *Manager) ResolveKey(baseURL string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, nil
	}
	return m.GetKey(baseURL)
}

// RemoveKey deletes the stored credential for the server at baseURL.
func (m *Manager) RemoveKey(baseURL string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	delete(creds.Servers, ServerKey(baseURL))

	return m.Save(creds)
}

// ListServers returns the servers that have stored credentials.
func (m *Manager) ListServers() ([]string, error) {
	creds, err := m.Load()
	if err != nil {
		return nil, err
	}

	servers := make([]string, 0, len(creds.Servers))
	for name := range creds.Servers {
		servers = append(servers, name)
	}

	sort.Strings(servers)

	return servers, nil
}

// GetTarget returns the resolved path to the credentials file.
func (m *Manager) GetTarget() string {
	return m.targetPath
}
