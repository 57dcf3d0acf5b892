package lexsearch

import "context"

// Embedder converts text to vector embeddings.
// Required for fuzzy and ai search; exact search works without it.
// It is called concurrently and must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and token counts.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}
