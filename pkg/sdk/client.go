package lexsearch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lexsearch/internal/db/memory"
	"github.com/kailas-cloud/lexsearch/internal/domain"
	"github.com/kailas-cloud/lexsearch/internal/domain/document"
	"github.com/kailas-cloud/lexsearch/internal/domain/legal/metadata"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/chunk"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/mode"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/request"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/result"
	"github.com/kailas-cloud/lexsearch/internal/repository/embcache"
	openaiEmb "github.com/kailas-cloud/lexsearch/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/lexsearch/internal/usecase/embedding"
	searchuc "github.com/kailas-cloud/lexsearch/internal/usecase/search"
)

const defaultMaxInFlight = 16

// searchUseCase is the internal search service, swappable in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Response, error)
}

// Client is the lexsearch SDK entry point. It is safe for concurrent use.
type Client struct {
	searchSvc searchUseCase
	cache     *memory.Store
	obs       *observer
}

// New creates a Client. Without WithOpenAI or WithEmbedder only exact search works.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.failurePolicy != "" && !searchuc.FailurePolicy(cfg.failurePolicy).IsValid() {
		return nil, fmt.Errorf("lexsearch: unknown failure policy %q", cfg.failurePolicy)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	embedder, cache, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	svc := searchuc.New(embedder, searchuc.Config{
		MaxConcurrency: cfg.maxConcurrency,
		FailurePolicy:  searchuc.FailurePolicy(cfg.failurePolicy),
		Timeout:        cfg.timeout,
	})
	return &Client{searchSvc: svc, cache: cache, obs: obs}, nil
}

// buildEmbedder assembles provider -> throttle -> cache. It returns a nil
// embedder when none is configured.
func buildEmbedder(cfg *clientConfig) (domain.Embedder, *memory.Store, error) {
	var base domain.Embedder
	model := "custom"
	switch {
	case cfg.embedder != nil:
		base = &embedderAdapter{inner: cfg.embedder}
	case cfg.openAI != nil:
		vec := domain.DefaultVectorConfig()
		if cfg.openAI.model != "" {
			vec.Model = cfg.openAI.model
		}
		base = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:        cfg.openAI.apiKey,
			BaseURL:       cfg.openAI.baseURL,
			Model:         vec.Model,
			MaxInputChars: vec.MaxInputChars(),
			Provider:      "openai",
			Logger:        zap.NewNop(),
		})
		model = vec.Model
	default:
		return nil, nil, nil
	}

	maxInFlight := cfg.maxInFlight
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}
	var embedder domain.Embedder = embeddinguc.NewThrottledEmbedder(base, embeddinguc.ThrottleConfig{
		MaxInFlight: maxInFlight,
	})

	if cfg.cacheSize <= 0 {
		return embedder, nil, nil
	}
	store, err := memory.NewStore(cfg.cacheSize)
	if err != nil {
		return nil, nil, fmt.Errorf("lexsearch: create embedding cache: %w", err)
	}
	return embcache.New(embedder, store, model, 0, nil, zap.NewNop()), store, nil
}

// Close releases the embedding cache.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// Search ranks docs against query. Documents that fail to embed are listed in
// Response.Failures unless the client uses FailureAbort.
func (c *Client) Search(ctx context.Context, query string, m Mode, docs []Document) (resp Response, err error) {
	start := time.Now()
	defer func() {
		c.obs.observe("search", start, err,
			"mode", string(m), "documents", len(docs), "results", len(resp.Results))
	}()

	domDocs := make([]document.Document, len(docs))
	for i, d := range docs {
		domDocs[i] = document.New(d.ID, d.Content, d.Type, d.UploadedAt)
	}

	req, err := request.New(query, mode.Mode(m), domDocs)
	if err != nil {
		return Response{}, fmt.Errorf("search: %w", err)
	}

	out, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return Response{}, fmt.Errorf("search: %w", err)
	}
	return responseFromDomain(&out), nil
}

// Extract derives legal metadata from content. docType is used when no
// document type is detected.
func (c *Client) Extract(content, docType string) Metadata {
	start := time.Now()
	md := metadata.Build(content, docType)
	c.obs.observe("extract", start, nil)
	return metadataFromDomain(&md)
}

// Chunk splits content into section-labelled paragraphs.
func (c *Client) Chunk(content string) []Chunk {
	start := time.Now()
	chunks := chunk.Split(content)
	c.obs.observe("chunk", start, nil, "chunks", len(chunks))
	return chunksFromDomain(chunks)
}

// embedderAdapter wraps public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
