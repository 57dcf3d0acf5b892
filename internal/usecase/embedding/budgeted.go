package embedding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lexsearch/internal/domain"
	"github.com/kailas-cloud/lexsearch/internal/logger"
	"github.com/kailas-cloud/lexsearch/internal/metrics"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// BudgetedEmbedder is the outermost embedder in the chain. It refuses calls
// once the token budget is spent and bills what the provider reports.
// Transport metrics live in transport/openai.
type BudgetedEmbedder struct {
	inner    domain.Embedder
	provider string
	model    string
	budget   BudgetChecker
	fields   []zap.Field
	fallback *zap.Logger
}

// NewBudgetedEmbedder wraps inner. A nil budget disables enforcement.
func NewBudgetedEmbedder(
	inner domain.Embedder, provider, model string,
	budget BudgetChecker, log *zap.Logger,
) *BudgetedEmbedder {
	return &BudgetedEmbedder{
		inner:    inner,
		provider: provider,
		model:    model,
		budget:   budget,
		fields:   []zap.Field{zap.String("provider", provider), zap.String("model", model)},
		fallback: log,
	}
}

// Embed embeds one query or chunk text.
func (p *BudgetedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	log := p.log(ctx)

	if p.budget != nil {
		if err := p.budget.Check(ctx); err != nil {
			metrics.EmbeddingErrorsTotal.WithLabelValues(p.provider, p.model, "budget_exceeded").Inc()
			log.Warn("Embedding refused, token budget spent", zap.Error(err))
			return domain.EmbeddingResult{}, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()
	result, err := p.inner.Embed(ctx, text)
	took := time.Since(start)
	if err != nil {
		log.Error("Embedding failed",
			zap.Duration("took", took),
			zap.Int("chars", domain.RuneLen(text)),
			zap.Error(err),
		)
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}

	p.bill(result.TotalTokens)

	log.Debug("Embedded",
		zap.Duration("took", took),
		zap.Int("chars", domain.RuneLen(text)),
		zap.Int("total_tokens", result.TotalTokens),
	)
	return result, nil
}

// bill records provider-reported tokens. Cache hits report zero and are free.
func (p *BudgetedEmbedder) bill(tokens int) {
	if p.budget == nil || tokens <= 0 {
		return
	}
	p.budget.Record(int64(tokens))
	remaining := metrics.EmbeddingBudgetTokensRemaining
	remaining.WithLabelValues(p.provider, "daily").Set(float64(p.budget.RemainingDaily()))
	remaining.WithLabelValues(p.provider, "monthly").Set(float64(p.budget.RemainingMonthly()))
}

// log prefers the request logger so lines carry the request id.
func (p *BudgetedEmbedder) log(ctx context.Context) *zap.Logger {
	l := logger.FromContext(ctx)
	if !l.Core().Enabled(zap.FatalLevel) { // no request logger attached
		l = p.fallback
	}
	return l.With(p.fields...)
}
