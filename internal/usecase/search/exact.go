package search

import (
	"github.com/kailas-cloud/lexsearch/internal/domain/document"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/result"
	"github.com/kailas-cloud/lexsearch/internal/domain/textspan"
)

// ContextRadius is the number of characters kept on each side of an exact match.
const ContextRadius = 100

// searchExact finds the first case-insensitive occurrence of query in each
// document. Results keep input order and always score ExactRelevance.
func searchExact(query string, docs []document.Document) result.Response {
	resp := result.Response{
		Results:  make([]result.Result, 0, len(docs)),
		Failures: []result.Failure{},
	}
	for i := range docs {
		content := docs[i].Content()
		span, ok := textspan.IndexFold(content, query)
		if !ok {
			continue
		}
		resp.Results = append(resp.Results, result.New(
			docs[i].ID(),
			content[span.Start:span.End],
			textspan.Around(content, span.Start, span.End, ContextRadius),
			result.ExactRelevance,
		))
	}
	return resp
}
