package embedding

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/lexsearch/internal/domain"
	"github.com/kailas-cloud/lexsearch/internal/metrics"
)

// ThrottleConfig bounds calls to the embedding provider.
type ThrottleConfig struct {
	// MaxInFlight caps concurrent provider calls process-wide. 0 disables the cap.
	MaxInFlight int64
	// RequestsPerSecond is the sustained call rate. 0 disables rate limiting.
	RequestsPerSecond float64
	Burst             int
}

// ThrottledEmbedder gates every call through an in-flight semaphore and a token bucket.
// It is shared by all concurrent document pipelines.
type ThrottledEmbedder struct {
	inner   domain.Embedder
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// NewThrottledEmbedder wraps inner with the configured limits.
func NewThrottledEmbedder(inner domain.Embedder, cfg ThrottleConfig) *ThrottledEmbedder {
	t := &ThrottledEmbedder{inner: inner}
	if cfg.MaxInFlight > 0 {
		t.sem = semaphore.NewWeighted(cfg.MaxInFlight)
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return t
}

// Embed waits for a rate token and an in-flight slot, then delegates.
func (t *ThrottledEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return domain.EmbeddingResult{}, fmt.Errorf("wait for rate limit: %w", ctxErr)
			}
			// the deadline leaves no room for the next token
			return domain.EmbeddingResult{}, fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
		}
	}

	if t.sem != nil {
		if err := t.sem.Acquire(ctx, 1); err != nil {
			return domain.EmbeddingResult{}, fmt.Errorf("acquire embedding slot: %w", err)
		}
		defer t.sem.Release(1)
	}

	metrics.EmbeddingInFlight.Inc()
	defer metrics.EmbeddingInFlight.Dec()

	res, err := t.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("throttled embed: %w", err)
	}
	return res, nil
}
