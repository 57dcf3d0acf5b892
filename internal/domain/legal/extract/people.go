package extract

import (
	"strings"

	"github.com/kailas-cloud/lexsearch/internal/domain/legal/lexicon"
)

// Party is a named litigant and its procedural role.
type Party struct {
	Role string
	Name string
}

// String renders the party as "Role: Name".
func (p Party) String() string { return p.Role + ": " + p.Name }

// ExtractParties returns every role mention followed by a capitalized name.
func ExtractParties(text string) []Party {
	matches := lexicon.Party.FindAllString(text, -1)
	parties := make([]Party, 0, len(matches))
	for _, m := range matches {
		tokens := lexicon.Whitespace.Split(m, -1)
		parties = append(parties, Party{
			Role: tokens[0],
			Name: strings.Join(tokens[1:], " "),
		})
	}
	return parties
}

// ExtractJudge returns the first judge mention.
func ExtractJudge(text string) (string, bool) {
	m := lexicon.Judge.FindString(text)
	return m, m != ""
}

// ExtractAttorneys returns every attorney mention, in order.
func ExtractAttorneys(text string) []string {
	matches := lexicon.Attorney.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
