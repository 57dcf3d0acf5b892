package domain

import (
	"context"
	"unicode/utf8"
)

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// TruncateRunes cuts text to at most maxChars characters (runes).
// The cut is a hard prefix cut; maxChars <= 0 disables truncation.
func TruncateRunes(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		// byte length bounds rune count from above
		return text
	}
	n := 0
	for i := range text {
		if n == maxChars {
			return text[:i]
		}
		n++
	}
	return text
}

// RuneLen returns the number of characters in text.
func RuneLen(text string) int { return utf8.RuneCountInString(text) }
