// highlight.go — Case- and punctuation-insensitive word matching.
package render

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

// NormalizeWord strips everything except letters, digits and underscore,
// then uppercases, so "Don't," and "dont" normalize to the same token.
func NormalizeWord(w string) string {
	return strings.ToUpper(nonWord.ReplaceAllString(strings.TrimSpace(w), ""))
}

// IsHighlighted reports whether a rendered word matches the configured
// highlight target. Both sides are normalized first; an empty or
// punctuation-only target matches nothing.
func IsHighlighted(word, target string) bool {
	n := NormalizeWord(target)
	return n != "" && NormalizeWord(word) == n
}
