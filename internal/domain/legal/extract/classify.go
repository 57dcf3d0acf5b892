// Package extract derives legal facts from raw document text.
//
// Every function is pure and independent of the others: they read only the
// shared static patterns, so callers may run them in any order or in parallel.
// Absence of a match is never an error.
package extract

import (
	"strings"

	"github.com/kailas-cloud/lexsearch/internal/domain/legal/lexicon"
)

// DetectSection returns the first legal section marker contained in text.
func DetectSection(text string) (string, bool) {
	return lexicon.FirstContained(lexicon.Sections, strings.ToUpper(text))
}

// DetectDocumentType returns the first document type contained in text.
func DetectDocumentType(text string) (string, bool) {
	return lexicon.FirstContained(lexicon.DocumentTypes, strings.ToUpper(text))
}

// DetectCourt returns the first court type contained in text.
func DetectCourt(text string) (string, bool) {
	return lexicon.FirstContained(lexicon.CourtTypes, strings.ToUpper(text))
}

// SplitParagraphs splits text on blank-line boundaries.
// Paragraph text is returned untouched, including leading or trailing spaces.
func SplitParagraphs(text string) []string {
	return lexicon.ParagraphBreak.Split(text, -1)
}
