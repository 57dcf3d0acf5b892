package extract

import (
	"strings"

	"github.com/kailas-cloud/lexsearch/internal/domain/legal/lexicon"
)

// ExtractCaseCitations returns every reporter citation in text, in order.
// Regex matches that fail the structural check are dropped.
func ExtractCaseCitations(text string) []string {
	matches := lexicon.Citation.FindAllString(text, -1)
	citations := make([]string, 0, len(matches))
	for _, m := range matches {
		if validCitation(m) {
			citations = append(citations, m)
		}
	}
	return citations
}

// validCitation checks "<volume> <reporter> <page>": volume and page must start
// with an integer and the reporter must name Cal.App.
func validCitation(c string) bool {
	parts := lexicon.Whitespace.Split(strings.TrimSpace(c), -1)
	if len(parts) < 3 {
		return false
	}
	return hasLeadingInt(parts[0]) &&
		strings.Contains(parts[1], lexicon.ReporterMarker) &&
		hasLeadingInt(parts[2])
}

// hasLeadingInt reports whether s begins with an optionally signed digit.
func hasLeadingInt(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
