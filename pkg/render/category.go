package render

import (
	"strings"
)

// CategoryLabel turns "customer_support" into "Customer Support". Blank
// categories have no label.
func CategoryLabel(category string) (string, bool) {
	normalized := strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(category))
	if normalized == "" {
		return "", false
	}

	var b strings.Builder
	prevWord := false
	for _, r := range normalized {
		word := isWordRune(r)
		if word && !prevWord && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
		prevWord = word
	}
	return b.String(), true
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
