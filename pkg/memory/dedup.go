package memory

import "strings"

// dedupPrefix is how many leading characters of content identify a memory.
const dedupPrefix = 100

// DedupKey is the identity used by Deduplicate: the first 100 characters of
// content, trimmed and lowercased.
func DedupKey(content string) string {
	runes := []rune(content)
	if len(runes) > dedupPrefix {
		runes = runes[:dedupPrefix]
	}
	return strings.ToLower(strings.TrimSpace(string(runes)))
}

// Deduplicate collapses records sharing a DedupKey. A later record replaces
// the kept one only when both timestamps parse and the later one is newer.
// Output follows the order in which each key was first seen.
func Deduplicate(records []Record) []Record {
	index := make(map[string]int, len(records))
	out := make([]Record, 0, len(records))

	for _, rec := range records {
		key := DedupKey(rec.Content)

		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, rec)
			continue
		}

		existing, okExisting := ParseTimestamp(out[i].StoredAt)
		incoming, okIncoming := ParseTimestamp(rec.StoredAt)
		if okExisting && okIncoming && incoming.After(existing) {
			out[i] = rec
		}
	}

	return out
}
