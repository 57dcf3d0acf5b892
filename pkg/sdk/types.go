package lexsearch

import (
	"github.com/kailas-cloud/lexsearch/internal/domain/legal/metadata"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/chunk"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/mode"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/lexsearch/internal/usecase/search"
)

// Mode selects the search algorithm.
type Mode string

// Search modes.
const (
	ModeExact Mode = Mode(mode.Exact)
	ModeFuzzy Mode = Mode(mode.Fuzzy)
	ModeAI    Mode = Mode(mode.AI)
)

// FailurePolicy decides what one document's embedding failure does to a search.
type FailurePolicy string

// Failure policies.
const (
	FailureIsolate FailurePolicy = FailurePolicy(searchuc.FailureIsolate)
	FailureAbort   FailurePolicy = FailurePolicy(searchuc.FailureAbort)
)

// Document is a searchable document. A nil or empty Content never matches.
type Document struct {
	ID         string  `json:"id"`
	Content    *string `json:"content"`
	Type       string  `json:"type,omitempty"`
	UploadedAt string  `json:"uploadedAt,omitempty"`
}

// Text builds a Document with content.
func Text(id, content string) Document {
	return Document{ID: id, Content: &content}
}

// Timeline holds the first date playing each procedural role.
type Timeline struct {
	FilingDate  string `json:"filingDate,omitempty"`
	HearingDate string `json:"hearingDate,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

// Arguments groups paragraphs by their role in the argument structure.
type Arguments struct {
	Claims           []string `json:"claims"`
	CounterArguments []string `json:"counterArguments"`
	Evidence         []string `json:"evidence"`
	Authorities      []string `json:"authorities"`
}

// Metadata is best-effort legal metadata. Empty strings mean absent.
type Metadata struct {
	CaseNumber   string    `json:"caseNumber,omitempty"`
	Date         string    `json:"date,omitempty"`
	DocumentType string    `json:"documentType,omitempty"`
	Parties      []string  `json:"parties"`
	Court        string    `json:"court,omitempty"`
	Judge        string    `json:"judge,omitempty"`
	Attorneys    []string  `json:"attorneys"`
	Citations    []string  `json:"citations"`
	Timeline     Timeline  `json:"timeline"`
	Arguments    Arguments `json:"arguments"`
}

// Result is one search hit.
type Result struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Context   string    `json:"context"`
	Relevance float64   `json:"relevance"`
	// Section is set for semantic hits whose best chunk falls under a section.
	Section   string    `json:"section,omitempty"`
	// Metadata is set for semantic hits only.
	Metadata  *Metadata `json:"metadata,omitempty"`
}

// Failure names a document that could not be scored.
type Failure struct {
	ID     string `json:"id"`
	Reason string `json:"reason,omitempty"`
}

// Response is the outcome of a search.
type Response struct {
	Results  []Result  `json:"results"`
	Failures []Failure `json:"failures"`
}

// Chunk is one section-labelled paragraph.
type Chunk struct {
	Text      string `json:"text"`
	Section   string `json:"section,omitempty"`
	Paragraph string `json:"paragraph,omitempty"`
}

func metadataFromDomain(md *metadata.Metadata) Metadata {
	return Metadata{
		CaseNumber:   md.CaseNumber,
		Date:         md.Date,
		DocumentType: md.DocumentType,
		Parties:      md.Parties,
		Court:        md.Court,
		Judge:        md.Judge,
		Attorneys:    md.Attorneys,
		Citations:    md.Citations,
		Timeline: Timeline{
			FilingDate:  md.Timeline.FilingDate,
			HearingDate: md.Timeline.HearingDate,
			Deadline:    md.Timeline.Deadline,
		},
		Arguments: Arguments{
			Claims:           md.Arguments.Claims,
			CounterArguments: md.Arguments.CounterArguments,
			Evidence:         md.Arguments.Evidence,
			Authorities:      md.Arguments.Authorities,
		},
	}
}

func responseFromDomain(resp *result.Response) Response {
	out := Response{
		Results:  make([]Result, len(resp.Results)),
		Failures: make([]Failure, len(resp.Failures)),
	}
	for i := range resp.Results {
		r := &resp.Results[i]
		out.Results[i] = Result{
			ID:        r.ID(),
			Text:      r.Text(),
			Context:   r.Context(),
			Relevance: r.Relevance(),
			Section:   r.Section(),
		}
		if md := r.Metadata(); md != nil {
			m := metadataFromDomain(md)
			out.Results[i].Metadata = &m
		}
	}
	for i, f := range resp.Failures {
		out.Failures[i] = Failure{ID: f.ID, Reason: f.Reason}
	}
	return out
}

func chunksFromDomain(chunks []chunk.Chunk) []Chunk {
	out := make([]Chunk, len(chunks))
	for i, c := range chunks {
		out[i] = Chunk{Text: c.Text, Section: c.Section, Paragraph: c.Paragraph}
	}
	return out
}
