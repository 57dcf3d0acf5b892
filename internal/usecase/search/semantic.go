package search

import (
	"context"
	"fmt"
	"math"

	"github.com/kailas-cloud/lexsearch/internal/domain/document"
	"github.com/kailas-cloud/lexsearch/internal/domain/legal/metadata"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/chunk"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/result"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/similarity"
)

// rankDocument scores one document against the query embedding.
// ok is false when the document cannot be compared (zero vector).
func (s *Service) rankDocument(
	ctx context.Context, query []float32, doc *document.Document,
) (result.Result, bool, error) {
	content := doc.Content()

	whole, err := s.embedText(ctx, content)
	if err != nil {
		return result.Result{}, false, fmt.Errorf("vectorize document: %w", err)
	}
	relevance := similarity.Cosine(query, whole.Embedding)
	if math.IsNaN(relevance) {
		return result.Result{}, false, nil
	}

	best, err := s.bestChunk(ctx, query, chunk.Split(content))
	if err != nil {
		return result.Result{}, false, err
	}

	md := metadata.Build(content, doc.Type())
	return result.NewRanked(doc.ID(), best.Text, best.Text, relevance, best.Section, &md), true, nil
}

// bestChunk embeds chunks one at a time and keeps the first highest scorer.
// A document whose chunks all score zero or below yields an empty chunk.
func (s *Service) bestChunk(ctx context.Context, query []float32, chunks []chunk.Chunk) (chunk.Chunk, error) {
	var best similarity.Best[chunk.Chunk]
	for i := range chunks {
		emb, err := s.embedText(ctx, chunks[i].Text)
		if err != nil {
			return chunk.Chunk{}, fmt.Errorf("vectorize chunk %d: %w", i, err)
		}
		best.Offer(chunks[i], similarity.Cosine(query, emb.Embedding))
	}
	c, _, _ := best.Result()
	return c, nil
}
