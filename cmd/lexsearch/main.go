package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lexsearch/internal/config"
	"github.com/kailas-cloud/lexsearch/internal/db"
	"github.com/kailas-cloud/lexsearch/internal/db/memory"
	dbRedis "github.com/kailas-cloud/lexsearch/internal/db/redis"
	"github.com/kailas-cloud/lexsearch/internal/domain"
	logpkg "github.com/kailas-cloud/lexsearch/internal/logger"
	"github.com/kailas-cloud/lexsearch/internal/metrics"
	budgetrepo "github.com/kailas-cloud/lexsearch/internal/repository/budget"
	"github.com/kailas-cloud/lexsearch/internal/repository/embcache"
	chiTransport "github.com/kailas-cloud/lexsearch/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/lexsearch/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/lexsearch/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/lexsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lexsearch/internal/usecase/search"
	usageuc "github.com/kailas-cloud/lexsearch/internal/usecase/usage"
	"github.com/kailas-cloud/lexsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lexsearch API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := newStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()
	metrics.RegisterHTTPMetrics()

	var (
		embedder domain.Embedder
		budget   *embeddinguc.BudgetTracker
	)
	if vecCfg, provCfg, ok := cfg.ActiveVectorizer(); ok {
		provName := vecCfg.Provider

		budgetCfg := provCfg.Budget
		if budgetCfg.DailyTokenLimit > 0 || budgetCfg.MonthlyTokenLimit > 0 {
			action := embeddinguc.BudgetActionWarn
			if budgetCfg.Action == "reject" {
				action = embeddinguc.BudgetActionReject
			}
			budget = embeddinguc.NewBudgetTracker(
				provName, budgetCfg.DailyTokenLimit, budgetCfg.MonthlyTokenLimit, action, logger,
			)
			// Connect persistence store, loads current counters.
			budget.WithStore(ctx, budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour))
		}

		// Pass nil interface (not typed nil pointer!) if budget is not configured.
		// Go gotcha: (*BudgetTracker)(nil) wrapped in BudgetChecker != nil.
		var budgetChecker embeddinguc.BudgetChecker
		if budget != nil {
			budgetChecker = budget
		}

		embedder = buildEmbedder(provName, provCfg, vecCfg, cfg, store, budgetChecker, logger)
		logger.Info("Embedder created",
			zap.String("provider", provName),
			zap.String("model", vecCfg.Model),
			zap.Int("dimensions", vecCfg.Dimensions),
			zap.Bool("cache", cfg.Cache.Enabled),
		)
	} else {
		logger.Warn("No vectorizer configured, only exact search is available")
	}

	searchSvc := searchuc.New(embedder, searchuc.Config{
		MaxConcurrency: cfg.Search.MaxConcurrency,
		FailurePolicy:  searchuc.FailurePolicy(cfg.Search.FailurePolicy),
		Timeout:        time.Duration(cfg.Search.TimeoutSec) * time.Second,
	})

	// Usage service reads from the shared BudgetTracker
	var budgetReader usageuc.BudgetReader
	if budget != nil {
		budgetReader = budget
	}
	usageSvc := usageuc.New(budgetReader)

	var embeddingChecker healthuc.EmbeddingChecker
	if embedder != nil {
		embeddingChecker = newEmbeddingHealthChecker(embedder)
	}
	healthSvc := healthuc.New(store, embeddingChecker)

	server := chiTransport.NewServer(searchSvc, usageSvc, healthSvc, logger, chiTransport.Options{
		MaxDocuments: cfg.Search.MaxDocuments,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	})
	handler := chiTransport.NewRouter(server, logger, cfg.Auth.APIKeys, metrics.Middleware())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// newStore creates the key-value store for the configured driver.
// Redis and Valkey speak the same protocol and share one client.
func newStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(cfg.MemorySize) //nolint:wrapcheck // composition root
	case config.DriverRedis, config.DriverValkey:
		return dbRedis.NewStore(dbRedis.Config{ //nolint:wrapcheck // composition root
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// chainHealth exposes the provider health check through the decorator chain.
type chainHealth struct {
	domain.Embedder
	base domain.HealthChecker
}

func (e chainHealth) HealthCheck(ctx context.Context) error {
	return e.base.HealthCheck(ctx) //nolint:wrapcheck // wrapped by embeddingHealthChecker
}

// buildEmbedder assembles the decorator chain: OpenAI -> Throttled -> Cached -> Instrumented.
// Cache hits skip the throttle and are not billed.
func buildEmbedder(
	provName string,
	provCfg config.ProviderConfig,
	vecCfg config.VectorizerConfig,
	cfg config.Config,
	store db.Store,
	budget embeddinguc.BudgetChecker,
	logger *zap.Logger,
) domain.Embedder {
	// Base provider (with transport metrics built-in)
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:        provCfg.APIKey,
		BaseURL:       provCfg.BaseURL,
		Model:         vecCfg.Model,
		Dimensions:    vecCfg.Dimensions,
		MaxInputChars: vecCfg.MaxInputChars,
		Provider:      provName,
		Logger:        logger,
	})

	var embedder domain.Embedder = embeddinguc.NewThrottledEmbedder(base, embeddinguc.ThrottleConfig{
		MaxInFlight:       cfg.Search.MaxInflightEmbeddings,
		RequestsPerSecond: cfg.Search.RequestsPerSecond,
		Burst:             cfg.Search.Burst,
	})

	if cfg.Cache.Enabled {
		embedder = embcache.New(
			embedder, store, vecCfg.Model, time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.EmbeddingCacheTotal, logger,
		)
	}

	embedder = embeddinguc.NewBudgetedEmbedder(embedder, provName, vecCfg.Model, budget, logger)

	return chainHealth{Embedder: embedder, base: base}
}
