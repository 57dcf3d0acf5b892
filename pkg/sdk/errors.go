package lexsearch

import "github.com/kailas-cloud/lexsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest         = domain.ErrInvalidRequest
	ErrUnknownSearchMode      = domain.ErrUnknownSearchMode
	ErrRateLimited            = domain.ErrRateLimited
	ErrEmbeddingQuotaExceeded = domain.ErrEmbeddingQuotaExceeded
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrEmbedderNotConfigured  = domain.ErrEmbedderNotConfigured
)
