// Package chunk splits a document into paragraph chunks labelled with the
// legal section they fall under.
package chunk

import (
	"github.com/kailas-cloud/lexsearch/internal/domain/legal/extract"
)

// Chunk is one paragraph of a document.
type Chunk struct {
	// Text is the paragraph prefixed with "<Section>:\n" when a section is set.
	Text      string
	Section   string
	Paragraph string
}

// Split chunks text by paragraph. The section is sticky: it changes only when a
// paragraph carries a section marker and is never reset.
func Split(text string) []Chunk {
	paragraphs := extract.SplitParagraphs(text)
	chunks := make([]Chunk, 0, len(paragraphs))

	current := ""
	for _, p := range paragraphs {
		if s, ok := extract.DetectSection(p); ok {
			current = s
		}
		chunks = append(chunks, Chunk{
			Text:      label(current, p),
			Section:   current,
			Paragraph: p,
		})
	}
	return chunks
}

func label(section, paragraph string) string {
	if section == "" {
		return paragraph
	}
	return section + ":\n" + paragraph
}
