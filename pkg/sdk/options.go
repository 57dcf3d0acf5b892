package lexsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type openAIConfig struct {
	apiKey  string
	baseURL string
	model   string
}

type clientConfig struct {
	embedder Embedder
	openAI   *openAIConfig

	maxConcurrency int
	maxInFlight    int64
	failurePolicy  FailurePolicy
	timeout        time.Duration
	cacheSize      int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithOpenAI embeds through an OpenAI-compatible API.
// An empty baseURL uses the OpenAI default; an empty model uses text-embedding-3-small.
func WithOpenAI(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAI = &openAIConfig{apiKey: apiKey, baseURL: baseURL, model: model}
	})
}

// WithEmbedder sets a custom text embedding provider. It takes precedence over WithOpenAI.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithMaxConcurrency bounds how many documents are ranked at once. Default: 8.
func WithMaxConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxConcurrency = n
	})
}

// WithMaxInFlight bounds concurrent embedding calls across all searches. Default: 16.
func WithMaxInFlight(n int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxInFlight = n
	})
}

// WithFailurePolicy decides whether one document's embedding failure fails
// the whole search (FailureAbort) or is reported in Response.Failures
// (FailureIsolate, the default).
func WithFailurePolicy(p FailurePolicy) Option {
	return optionFunc(func(c *clientConfig) {
		c.failurePolicy = p
	})
}

// WithTimeout bounds each semantic search. Documents still pending when it
// fires are reported as failures.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithEmbeddingCache keeps up to size embeddings in memory so repeated
// searches over the same documents skip the provider.
func WithEmbeddingCache(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheSize = size
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
