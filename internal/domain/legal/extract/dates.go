package extract

import (
	"strings"

	"github.com/kailas-cloud/lexsearch/internal/domain/legal/lexicon"
	"github.com/kailas-cloud/lexsearch/internal/domain/textspan"
)

// DateMention is a date found in text together with its surrounding context.
type DateMention struct {
	Date    string
	Context string
}

// IsFiling reports whether the context marks a filing date.
func (d DateMention) IsFiling() bool { return strings.Contains(d.Context, lexicon.FilingKeyword) }

// IsHearing reports whether the context marks a hearing date.
func (d DateMention) IsHearing() bool { return strings.Contains(d.Context, lexicon.HearingKeyword) }

// IsDeadline reports whether the context marks a deadline.
func (d DateMention) IsDeadline() bool { return strings.Contains(d.Context, lexicon.DeadlineKeyword) }

// ExtractDates returns every long-form date in text with a window of
// lexicon.DateContextRadius characters on each side.
func ExtractDates(text string) []DateMention {
	locs := lexicon.Date.FindAllStringIndex(text, -1)
	dates := make([]DateMention, 0, len(locs))
	for _, loc := range locs {
		dates = append(dates, DateMention{
			Date:    text[loc[0]:loc[1]],
			Context: textspan.Around(text, loc[0], loc[1], lexicon.DateContextRadius),
		})
	}
	return dates
}

// FirstDate returns the first mention matching pred.
func FirstDate(dates []DateMention, pred func(DateMention) bool) (string, bool) {
	for _, d := range dates {
		if pred(d) {
			return d.Date, true
		}
	}
	return "", false
}
