package extract

import "strings"

// Arguments groups paragraphs by their role in the argument structure.
type Arguments struct {
	Claims           []string
	CounterArguments []string
	Evidence         []string
	Authorities      []string
}

// ExtractArguments assigns each paragraph to at most one bucket, checking
// claims, counter-arguments, evidence and authorities in that order.
// Paragraphs matching no bucket are dropped.
func ExtractArguments(text string) Arguments {
	args := Arguments{
		Claims:           []string{},
		CounterArguments: []string{},
		Evidence:         []string{},
		Authorities:      []string{},
	}
	for _, p := range SplitParagraphs(text) {
		upper := strings.ToUpper(p)
		switch {
		case containsAny(upper, "CLAIM", "ARGUMENT"):
			args.Claims = append(args.Claims, p)
		case containsAny(upper, "COUNTER", "OPPOSE"):
			args.CounterArguments = append(args.CounterArguments, p)
		case containsAny(upper, "EVIDENCE", "EXHIBIT"):
			args.Evidence = append(args.Evidence, p)
		case containsAny(upper, "AUTHORITY", "CITE"):
			args.Authorities = append(args.Authorities, p)
		}
	}
	return args
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
