package credentials

// Credentials represents the stored API credentials in credentials.toml.
// Keys are grouped per Cogniz server so switching base URL never sends a
// token to the wrong host.
type Credentials struct {
	Version int                         `toml:"version"`
	Servers map[string]ServerCredential `toml:"servers"`
}

// ServerCredential holds the API key for a single Cogniz server.
type ServerCredential struct {
	APIKey string `toml:"api_key"`
}
