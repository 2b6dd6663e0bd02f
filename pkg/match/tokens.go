package match

import (
	"regexp"
	"strings"
)

var (
	reMajorSplit = regexp.MustCompile(`[\s,&-]+`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// normalizeText lowercases and collapses whitespace so that program names
// and majors compare on content, not formatting.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// tokenize splits a major or program name on whitespace, commas,
// ampersands and hyphens, dropping empty pieces.
func tokenize(s string) []string {
	parts := reMajorSplit.Split(normalizeText(s), -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
