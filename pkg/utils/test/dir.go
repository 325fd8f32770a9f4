package testutils

import (
	"github.com/papercomputeco/cogniz/pkg/connection"
)

// ConfigureDir stores a complete connection and API key in the .cogniz
// directory dir.
func ConfigureDir(dir, baseURL, projectID, apiKey string) error {
	svc, err := connection.NewService(dir)
	if err != nil {
		return err
	}
	if err := svc.UpdateConnection(connection.Update{BaseURL: &baseURL, ProjectID: &projectID}); err != nil {
		return err
	}
	return svc.SetAPIKey(apiKey)
}
