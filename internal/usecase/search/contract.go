package search

import (
	"context"

	"github.com/kailas-cloud/lexsearch/internal/domain"
)

// Embedder vectorizes text into embeddings.
// It is shared by concurrent document pipelines and must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
