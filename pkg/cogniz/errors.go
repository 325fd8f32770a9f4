package cogniz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ErrConfigurationMissing is returned when the base URL, project id or
	// API key has not been configured.
	ErrConfigurationMissing = errors.New("Cogniz connection is not configured. Run 'cogniz configure' first.") //nolint:staticcheck // shown to users verbatim

	// ErrNoProjects is wrapped by the RemoteError returned when the server
	// lists no usable projects.
	ErrNoProjects = errors.New("No projects returned by Cogniz.") //nolint:staticcheck // shown to users verbatim

	// ErrEmptyContent is returned when storing blank content.
	ErrEmptyContent = errors.New("memory content is empty")

	// ErrEmptySkillID is returned when a skill is addressed without an id.
	ErrEmptySkillID = errors.New("skill id is empty")
)

// RemoteError is a failed or unreadable response from Cogniz. Message is
// ready to show to the user.
type RemoteError struct {
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Keys searched, in order, for a human readable message in error bodies.
var messageKeys = []string{"message", "error", "detail", "reason", "description"}

const maxSnippetRunes = 200

// stripPolicy drops every tag. script and style bodies are skipped too.
var stripPolicy = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

// newRemoteError builds the error for a non-2xx response. The message comes
// from a JSON message field, else the cleaned body, else the status code.
func newRemoteError(status int, raw []byte, fallback string) *RemoteError {
	e := &RemoteError{Status: status}

	if len(raw) > 0 {
		if msg := extractMessage(raw); msg != "" {
			e.Message = msg
			return e
		}
		if snippet := sanitizeBody(string(raw)); snippet != "" {
			e.Message = fallback + ": " + snippet
			return e
		}
	}

	e.Message = fmt.Sprintf("%s (HTTP %d)", fallback, status)
	return e
}

// decodeBody parses a successful response. Empty and invalid bodies become
// RemoteErrors carrying fallback.
func decodeBody(status int, raw []byte, fallback string) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &RemoteError{
			Status:  status,
			Message: fallback + ": received an empty response.",
		}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		msg := fallback + ": response could not be parsed."
		if snippet := sanitizeBody(string(raw)); snippet != "" {
			msg = fallback + ": " + snippet
		}
		return nil, &RemoteError{Status: status, Message: msg, Err: err}
	}

	return data, nil
}

func extractMessage(raw []byte) string {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return ""
	}
	return messageFrom(data)
}

// messageFrom walks obj's message keys, descending into nested objects.
func messageFrom(data any) string {
	obj, ok := data.(map[string]any)
	if !ok {
		return ""
	}

	for _, key := range messageKeys {
		switch v := obj[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s)
				}
			}
		case map[string]any:
			if nested := messageFrom(v); nested != "" {
				return nested
			}
		}
	}

	return ""
}

// sanitizeBody reduces an HTML or text body to at most 200 characters of
// plain text.
func sanitizeBody(raw string) string {
	text := stripPolicy.Sanitize(html.UnescapeString(raw))
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > maxSnippetRunes {
		text = string(runes[:maxSnippetRunes])
	}
	return text
}
