package domain

import "errors"

var (
	// ErrInvalidRequest signals a malformed or incomplete search request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownSearchMode signals a search type outside exact, fuzzy and ai.
	ErrUnknownSearchMode = errors.New("invalid search type")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmbeddingQuotaExceeded signals an exhausted embedding budget.
	ErrEmbeddingQuotaExceeded = errors.New("embedding quota exceeded")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbedderNotConfigured signals a semantic search without an embedding provider.
	ErrEmbedderNotConfigured = errors.New("embedder not configured")
)
