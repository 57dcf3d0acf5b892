package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/lexsearch/internal/domain"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/mode"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/request"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/result"
	"github.com/kailas-cloud/lexsearch/internal/logger"
	"github.com/kailas-cloud/lexsearch/internal/metrics"
)

// FailurePolicy decides what one document's failure does to the whole search.
type FailurePolicy string

// Failure policy constants.
const (
	// FailureIsolate reports the document as failed and keeps going.
	FailureIsolate FailurePolicy = "isolate"
	// FailureAbort fails the whole search on the first document failure.
	FailureAbort FailurePolicy = "abort"
)

// IsValid checks if the policy is one of the supported values.
func (p FailurePolicy) IsValid() bool {
	return p == FailureIsolate || p == FailureAbort
}

// DefaultMaxConcurrency bounds concurrent document pipelines when unset.
const DefaultMaxConcurrency = 8

// Config tunes semantic search.
type Config struct {
	MaxConcurrency int
	FailurePolicy  FailurePolicy
	// Timeout bounds a whole search. 0 means only the caller's context applies.
	Timeout time.Duration
}

// Service dispatches searches across exact, fuzzy and ai modes.
type Service struct {
	embed Embedder
	cfg   Config
}

// New creates a search service. embed may be nil; semantic modes then fail
// with domain.ErrEmbedderNotConfigured.
func New(embed Embedder, cfg Config) *Service {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = DefaultMaxConcurrency
	}
	if !cfg.FailurePolicy.IsValid() {
		cfg.FailurePolicy = FailureIsolate
	}
	return &Service{embed: embed, cfg: cfg}
}

// Search runs req and returns results with per-document failures.
// Documents without content never match and are never reported as failed.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Response, error) {
	start := time.Now()
	m := req.Mode()
	ctx, log := logger.With(ctx, zap.String("mode", string(m)))

	var (
		resp result.Response
		err  error
	)
	switch {
	case m == mode.Exact:
		resp = searchExact(req.Query(), req.Searchable())
	case m.IsSemantic():
		resp, err = s.searchSemantic(ctx, req)
	default:
		err = fmt.Errorf("%q: %w", m, domain.ErrUnknownSearchMode)
	}

	duration := time.Since(start)
	metrics.SearchDuration.WithLabelValues(string(m)).Observe(duration.Seconds())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(m), "error").Inc()
		log.Warn("Search failed", zap.Duration("duration", duration), zap.Error(err))
		return result.Response{}, err
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(m), "ok").Inc()
	metrics.SearchResultsReturned.WithLabelValues(string(m)).Observe(float64(len(resp.Results)))
	if n := len(resp.Failures); n > 0 {
		metrics.SearchDocumentFailuresTotal.WithLabelValues(string(m)).Add(float64(n))
	}

	log.Debug("Search completed",
		zap.Int("documents", len(req.Documents())),
		zap.Int("results", len(resp.Results)),
		zap.Int("failures", len(resp.Failures)),
		zap.Duration("duration", duration),
	)
	return resp, nil
}

// outcome is the result of one document pipeline.
type outcome struct {
	result  result.Result
	matched bool
	failure *result.Failure
}

// searchSemantic embeds the query once, then ranks every document concurrently.
func (s *Service) searchSemantic(ctx context.Context, req *request.Request) (result.Response, error) {
	if s.embed == nil {
		return result.Response{}, domain.ErrEmbedderNotConfigured
	}
	parent := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	query, err := s.embedText(ctx, req.Query())
	if err != nil {
		return result.Response{}, fmt.Errorf("vectorize query: %w", err)
	}

	docs := req.Searchable()
	outcomes := make([]outcome, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrency)
	for i := range docs {
		g.Go(func() error {
			doc := &docs[i]
			r, ok, err := s.rankDocument(gctx, query.Embedding, doc)
			if err == nil {
				outcomes[i] = outcome{result: r, matched: ok}
				return nil
			}
			if s.cfg.FailurePolicy == FailureAbort {
				return fmt.Errorf("document %q: %w", doc.ID(), err)
			}
			logger.FromContext(ctx).Warn("Document skipped",
				zap.String("document_id", doc.ID()),
				zap.Error(err),
			)
			outcomes[i] = outcome{failure: &result.Failure{ID: doc.ID(), Reason: err.Error()}}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result.Response{}, err //nolint:wrapcheck // wrapped inside the pipeline
	}
	// Documents cut short by the search timeout are already reported as
	// failures; a canceled caller gets nothing.
	if err := parent.Err(); err != nil {
		return result.Response{}, fmt.Errorf("search canceled: %w", err)
	}

	resp := result.Response{
		Results:  make([]result.Result, 0, len(docs)),
		Failures: []result.Failure{},
	}
	for _, o := range outcomes {
		switch {
		case o.failure != nil:
			resp.Failures = append(resp.Failures, *o.failure)
		case o.matched:
			resp.Results = append(resp.Results, o.result)
		}
	}
	result.SortByRelevance(resp.Results)
	return resp, nil
}

// embedText embeds one text and records its token usage on the request.
func (s *Service) embedText(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, err //nolint:wrapcheck // callers add context
	}
	domain.UsageFromContext(ctx).AddTokens(res.TotalTokens)
	return res, nil
}
