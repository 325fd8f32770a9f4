// Package telemetry records usage events such as saved memories and
// executed skills.
package telemetry

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// Source identifies this client in every event.
	Source = "cogniz-cli"
)

// Event names.
const (
	EventActivate            = "activate"
	EventConfigureConnection = "configure_connection"
	EventStoreMemory         = "store_memory"
	EventStoreClipboard      = "store_memory_clipboard"
	EventInsertMemory        = "insert_memory"
	EventSearchMemories      = "search_memories"
	EventSelectProject       = "select_project"
	EventExecuteSkill        = "execute_skill"
)

// Event is a transport-neutral usage event.
type Event struct {
	SchemaVersion int            `json:"schema_version"`
	EventID       string         `json:"event_id"`
	Name          string         `json:"name"`
	Source        string         `json:"source"`
	Timestamp     time.Time      `json:"timestamp"`
	Properties    map[string]any `json:"properties,omitempty"`
}

// NewEvent stamps a new event with a random id.
func NewEvent(name string, properties map[string]any, now time.Time) *Event {
	return &Event{
		SchemaVersion: SchemaVersionV1,
		EventID:       uuid.NewString(),
		Name:          name,
		Source:        Source,
		Timestamp:     now.UTC(),
		Properties:    properties,
	}
}
