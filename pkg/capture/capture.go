// Package capture builds the text and metadata stored for captured
// selections and clipboard contents.
package capture

import (
	"errors"
	"strings"
	"time"
)

const (
	// Provider identifies this client in stored metadata.
	Provider = "cogniz-cli"

	// DefaultClipboardSource labels clipboard captures without a source.
	DefaultClipboardSource = "Clipboard"

	// TimestampLayout is ISO-8601 in UTC with milliseconds.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Origins recorded in metadata.
const (
	OriginSelection = "selection"
	OriginClipboard = "clipboard"
)

var (
	// ErrEmptySelection is returned when the selected text is blank.
	ErrEmptySelection = errors.New("select some text before saving a memory")

	// ErrEmptyClipboard is returned when the clipboard is blank.
	ErrEmptyClipboard = errors.New("clipboard is empty or contains only whitespace")
)

// Payload is a memory ready to be stored.
type Payload struct {
	Content  string
	Metadata map[string]any
	Origin   string
}

// Selection describes text captured from a file.
type Selection struct {
	Text     string
	File     string
	Language string
}

// FromSelection formats a selection capture taken at now. The Source line
// is left out when no file is known.
func FromSelection(sel Selection, now time.Time) (Payload, error) {
	text := strings.TrimSpace(sel.Text)
	if text == "" {
		return Payload{}, ErrEmptySelection
	}

	file := strings.TrimSpace(sel.File)
	language := strings.TrimSpace(sel.Language)

	lines := []string{"Captured Selection:", text, ""}
	if language != "" {
		lines = append(lines, "Language: "+language)
	}
	if file != "" {
		lines = append(lines, "Source: "+file)
	}
	lines = append(lines, "Captured: "+stamp(now))

	metadata := map[string]any{
		"provider": Provider,
		"origin":   OriginSelection,
	}
	if file != "" {
		metadata["file"] = file
	}
	if language != "" {
		metadata["language"] = language
	}

	return Payload{
		Content:  strings.Join(lines, "\n"),
		Metadata: metadata,
		Origin:   OriginSelection,
	}, nil
}

// FromClipboard formats a clipboard capture taken at now. A blank source is
// recorded as "Clipboard".
func FromClipboard(text, source string, now time.Time) (Payload, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Payload{}, ErrEmptyClipboard
	}

	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultClipboardSource
	}

	content := strings.Join([]string{
		"Captured Clipboard:",
		text,
		"",
		"Source: " + source,
		"Captured: " + stamp(now),
	}, "\n")

	return Payload{
		Content: content,
		Metadata: map[string]any{
			"provider": Provider,
			"origin":   OriginClipboard,
			"source":   source,
		},
		Origin: OriginClipboard,
	}, nil
}

func stamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
