// Package render turns memory records into the short strings shown in lists:
// titles, snippets, category labels and relative times.
package render

import (
	"regexp"
	"strings"
)

// boilerplatePrefixes mark capture header lines that never make a good title
// or snippet. Matched case-insensitively.
var boilerplatePrefixes = []string{
	"captured selection",
	"captured clipboard",
	"captured memory",
	"page title",
	"page url",
	"source",
	"timestamp",
	"domain",
	"link",
}

var (
	titleKeys   = []string{"title", "page_title", "pageTitle", "name", "subject"}
	summaryKeys = []string{"summary", "description"}

	lineBreak  = regexp.MustCompile(`\r?\n`)
	whitespace = regexp.MustCompile(`\s+`)
)

// MetadataString returns the first of keys whose value is a non-blank string,
// or an array holding one, trimmed.
func MetadataString(metadata map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		switch v := metadata[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s, true
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s), true
				}
			}
		}
	}
	return "", false
}

// ContentLabel finds the first line starting with "<label>:" (case
// insensitive) and returns what follows it. An empty value counts as absent.
func ContentLabel(content, label string) (string, bool) {
	prefix := strings.ToLower(label + ":")
	for _, line := range lineBreak.Split(content, -1) {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToLower(trimmed), prefix) {
			continue
		}
		value := strings.TrimSpace(trimmed[len(prefix):])
		return value, value != ""
	}
	return "", false
}

// ContentLines returns the trimmed, non-blank lines of content that are not
// capture boilerplate.
func ContentLines(content string) []string {
	var lines []string
	for _, line := range lineBreak.Split(content, -1) {
		line = strings.TrimSpace(line)
		if line == "" || isBoilerplate(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func isBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// Title picks, in order: a metadata title field, a "Page Title:" line, the
// first non-boilerplate line, the raw content.
func Title(content string, metadata map[string]any, maxLen int) string {
	if t, ok := MetadataString(metadata, titleKeys...); ok {
		return Truncate(t, maxLen)
	}
	if t, ok := ContentLabel(content, "Page Title"); ok {
		return Truncate(t, maxLen)
	}
	if lines := ContentLines(content); len(lines) > 0 {
		return Truncate(lines[0], maxLen)
	}
	return Truncate(content, maxLen)
}

// Snippet summarizes content in at most two non-boilerplate lines. With none
// left it uses metadata summary or description, then the raw content.
func Snippet(content string, metadata map[string]any, maxLen int) string {
	lines := ContentLines(content)
	switch len(lines) {
	case 0:
		if s, ok := MetadataString(metadata, summaryKeys...); ok {
			return Truncate(s, maxLen)
		}
		return Truncate(content, maxLen)
	case 1:
		return Truncate(lines[0], maxLen)
	default:
		joined := whitespace.ReplaceAllString(lines[0]+" "+lines[1], " ")
		return Truncate(strings.TrimSpace(joined), maxLen)
	}
}

// Truncate cuts text to maxLen characters, ending in "..." when cut.
// maxLen <= 0 leaves text unchanged.
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	keep := max(0, maxLen-3)
	return strings.TrimRight(string(runes[:keep]), " \t\r\n") + "..."
}
