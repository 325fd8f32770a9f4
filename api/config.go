// Package api provides the local HTTP bridge that exposes Cogniz memories to
// editors and agents.
package api

import "github.com/papercomputeco/cogniz/pkg/telemetry"

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":7311")
	ListenAddr string

	// Tracker records usage events. Optional.
	Tracker *telemetry.Tracker

	// DisableMCP leaves /mcp unmounted.
	DisableMCP bool
}
