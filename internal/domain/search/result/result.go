package result

import (
	"sort"

	"github.com/kailas-cloud/lexsearch/internal/domain/legal/metadata"
)

// ExactRelevance is the relevance assigned to every exact-mode hit.
const ExactRelevance = 1.0

// Result is a single search hit.
type Result struct {
	id        string
	text      string
	context   string
	relevance float64
	section   string
	metadata  *metadata.Metadata
}

// New creates a search result without legal metadata.
func New(id, text, context string, relevance float64) Result {
	return Result{id: id, text: text, context: context, relevance: relevance}
}

// NewRanked creates a semantic search result.
// section may be empty; md is attached as-is.
func NewRanked(id, text, context string, relevance float64, section string, md *metadata.Metadata) Result {
	return Result{
		id: id, text: text, context: context,
		relevance: relevance, section: section, metadata: md,
	}
}

// ID returns the document identifier.
func (r *Result) ID() string { return r.id }

// Text returns the matched passage.
func (r *Result) Text() string { return r.text }

// Context returns the text surrounding the match.
func (r *Result) Context() string { return r.context }

// Relevance returns the relevance score.
func (r *Result) Relevance() float64 { return r.relevance }

// Section returns the legal section of the matched passage, or "".
func (r *Result) Section() string { return r.section }

// Metadata returns the legal metadata of the whole document, or nil.
func (r *Result) Metadata() *metadata.Metadata { return r.metadata }

// Failure is a document that could not be scored.
type Failure struct {
	ID     string
	Reason string
}

// Response is the outcome of one search.
type Response struct {
	Results  []Result
	Failures []Failure
}

// FailedIDs returns the ids of failed documents, in failure order.
func (r *Response) FailedIDs() []string {
	ids := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		ids[i] = f.ID
	}
	return ids
}

// SortByRelevance orders results by descending relevance.
// Equal scores keep their relative order.
func SortByRelevance(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].relevance > results[j].relevance
	})
}
