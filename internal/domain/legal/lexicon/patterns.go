package lexicon

import "regexp"

// Compiled extraction patterns.
var (
	// Citation matches California appellate reporter citations, e.g. "123 Cal.App.4d 567".
	Citation = regexp.MustCompile(`\d{1,3}\s+Cal\.App\.\d{1,3}d\s+\d{1,3}`)

	// Date matches long-form dates, e.g. "March 3rd, 2023".
	Date = regexp.MustCompile(
		`(?:January|February|March|April|May|June|July|August|September|October|November|December)` +
			`\s+\d{1,2}(?:st|nd|rd|th)?,\s+\d{4}`,
	)

	// Party matches a procedural role followed by capitalized name tokens.
	Party = regexp.MustCompile(`(?:Petitioner|Respondent|Plaintiff|Defendant|Appellant|Appellee)(?:\s+[A-Z][a-z]+)+`)

	// Judge matches a judicial title followed by capitalized name tokens.
	Judge = regexp.MustCompile(`(?:Honorable|Judge)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`)

	// Attorney matches a counsel title followed by capitalized name tokens.
	Attorney = regexp.MustCompile(`(?:Attorney|Counsel|Lawyer)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`)

	// ParagraphBreak separates paragraphs: a blank line, possibly holding whitespace.
	ParagraphBreak = regexp.MustCompile(`\n\s*\n`)

	// Whitespace splits a match into tokens.
	Whitespace = regexp.MustCompile(`\s+`)
)

// Date role keywords, matched case-sensitively against a date's context window.
const (
	FilingKeyword   = "FILE"
	HearingKeyword  = "HEAR"
	DeadlineKeyword = "DEADLINE"
)

// Citation validation marker.
const ReporterMarker = "Cal.App."

// DateContextRadius is the number of characters captured on each side of a date.
const DateContextRadius = 50
