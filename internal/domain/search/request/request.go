package request

import (
	"fmt"

	"github.com/kailas-cloud/lexsearch/internal/domain"
	"github.com/kailas-cloud/lexsearch/internal/domain/document"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/mode"
)

// Request is a validated search query over a caller-supplied document set.
type Request struct {
	query      string
	searchMode mode.Mode
	documents  []document.Document
}

// New validates search parameters.
// documents must be non-nil; an empty slice is a valid request that matches nothing.
func New(query string, m mode.Mode, documents []document.Document) (Request, error) {
	if query == "" {
		return Request{}, fmt.Errorf("query is required: %w", domain.ErrInvalidRequest)
	}
	if documents == nil {
		return Request{}, fmt.Errorf("documents are required: %w", domain.ErrInvalidRequest)
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%q: %w", m, domain.ErrUnknownSearchMode)
	}
	return Request{query: query, searchMode: m, documents: documents}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Mode returns the search strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Documents returns the documents to search, in caller order.
func (r *Request) Documents() []document.Document { return r.documents }

// Searchable returns the documents carrying text, in caller order.
func (r *Request) Searchable() []document.Document {
	out := make([]document.Document, 0, len(r.documents))
	for _, d := range r.documents {
		if d.HasContent() {
			out = append(out, d)
		}
	}
	return out
}
