package memory

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Normalize maps one search result object onto a Record. Every field is
// resolved through an ordered list of upstream names:
//
//	content   content, memory
//	category  category, categories[0]
//	stored_at stored_at, created_at, timestamp
//	id        memory_id, else the content
//
// Metadata is kept only when it is a JSON object.
func Normalize(raw map[string]any) Record {
	rec := Record{}

	if v, ok := raw["content"].(string); ok {
		rec.Content = v
	} else if v, ok := raw["memory"].(string); ok {
		rec.Content = v
	}

	if v, ok := raw["category"].(string); ok {
		rec.Category = v
	} else if list, ok := raw["categories"].([]any); ok {
		for _, item := range list {
			if s, ok := item.(string); ok {
				rec.Category = s
				break
			}
		}
	}

	rec.Relevance = number(raw["relevance"])

	if m, ok := raw["metadata"].(map[string]any); ok && m != nil {
		rec.Metadata = m
	}

	for _, key := range []string{"stored_at", "created_at", "timestamp"} {
		if s, ok := raw[key].(string); ok {
			rec.StoredAt = s
			break
		}
	}

	if id, ok := raw["memory_id"]; ok && id != nil {
		rec.ID = CoerceString(id)
	} else {
		rec.ID = rec.Content
	}

	return rec
}

// NormalizeAll normalizes each result and drops the ones whose content is
// blank.
func NormalizeAll(raws []map[string]any) []Record {
	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		rec := Normalize(raw)
		if strings.TrimSpace(rec.Content) == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// CoerceString renders a scalar JSON value as a string. Objects, arrays and
// null become "".
func CoerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func number(v any) *float64 {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil
		}
		return &f
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	default:
		return nil
	}
}

// ParseProjects accepts either a bare array or a {"projects": [...]}
// envelope. Ids come from project_id or id, names from name or project_name,
// descriptions from description or project_description. Entries without an
// id are dropped.
func ParseProjects(data any) []Project {
	var list []any
	switch t := data.(type) {
	case []any:
		list = t
	case map[string]any:
		list, _ = t["projects"].([]any)
	}

	projects := make([]Project, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		p := Project{
			ID:          firstString(obj, CoerceString, "project_id", "id"),
			Name:        firstString(obj, asString, "name", "project_name"),
			Description: firstString(obj, asString, "description", "project_description"),
		}
		if p.ID == "" {
			continue
		}
		projects = append(projects, p)
	}

	return projects
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// firstString returns conv of the first key present with a non-null value.
func firstString(obj map[string]any, conv func(any) string, keys ...string) string {
	for _, key := range keys {
		if v, ok := obj[key]; ok && v != nil {
			return conv(v)
		}
	}
	return ""
}
