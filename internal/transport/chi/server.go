package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexsearch/internal/domain"
	"github.com/kailas-cloud/lexsearch/internal/domain/legal/metadata"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/chunk"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/mode"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/request"
	domusage "github.com/kailas-cloud/lexsearch/internal/domain/usage"
	"github.com/kailas-cloud/lexsearch/internal/logger"
	healthuc "github.com/kailas-cloud/lexsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lexsearch/internal/usecase/search"
	usageuc "github.com/kailas-cloud/lexsearch/internal/usecase/usage"
)

// Response headers.
const (
	HeaderFailedDocuments = "X-Failed-Documents"
	HeaderEmbeddingTokens = "X-Embedding-Tokens"
)

const msgQueryAndDocuments = "Query and documents are required"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Options tunes request limits.
type Options struct {
	// MaxDocuments caps documents per search. 0 disables the cap.
	MaxDocuments int
	// MaxBodyBytes caps the request body. 0 disables the cap.
	MaxBodyBytes int64
}

// Server serves the document search API.
type Server struct {
	search        *searchuc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	opts          Options
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	opts Options,
) *Server {
	s := &Server{
		search: search,
		usage:  usage,
		health: health,
		logger: logger,
		opts:   opts,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest),
		sentinelHandler(domain.ErrUnknownSearchMode, http.StatusBadRequest),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests),
		sentinelHandler(domain.ErrEmbeddingQuotaExceeded, http.StatusPaymentRequired),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway),
		sentinelHandler(domain.ErrEmbedderNotConfigured, http.StatusNotImplemented),
	}
	return s
}

// Mount registers the API routes on r.
func (s *Server) Mount(r chi.Router) {
	r.Post("/api/v1/documents/search", s.SearchDocuments)
	r.Post("/api/documents/search", s.SearchDocuments)
	r.Post("/api/v1/documents/extract", s.ExtractMetadata)
	r.Get("/api/v1/usage", s.GetUsage)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// SearchDocuments handles POST /api/v1/documents/search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}

	if req.Query == "" || req.Documents == nil {
		writeError(w, http.StatusBadRequest, msgQueryAndDocuments)
		return
	}
	if s.opts.MaxDocuments > 0 && len(req.Documents) > s.opts.MaxDocuments {
		writeError(w, http.StatusBadRequest,
			"too many documents: at most "+strconv.Itoa(s.opts.MaxDocuments)+" per request")
		return
	}

	m := mode.Mode(req.SearchType)
	if !m.IsValid() {
		writeError(w, http.StatusBadRequest, "Invalid search type")
		return
	}

	searchReq, err := request.New(req.Query, m, documentsFromInput(req.Documents))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	resp, err := s.search.Search(ctx, &searchReq)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]searchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = searchResultToDTO(&resp.Results[i])
	}

	if failed := resp.FailedIDs(); len(failed) > 0 {
		w.Header().Set(HeaderFailedDocuments, strings.Join(failed, ","))
	}
	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, items)
}

// ExtractMetadata handles POST /api/v1/documents/extract.
func (s *Server) ExtractMetadata(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Content == nil {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}

	md := metadata.Build(*req.Content, req.Type)
	writeJSON(w, http.StatusOK, extractResponse{
		metadataDTO: metadataToDTO(&md),
		Chunks:      chunksToDTO(chunk.Split(*req.Content)),
	})
}

// GetUsage handles GET /api/v1/usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	period := domusage.PeriodMonth
	if p := r.URL.Query().Get("period"); p != "" {
		period = domusage.Period(p)
		if !period.IsValid() {
			writeError(w, http.StatusBadRequest, "period must be day, month or total")
			return
		}
	}

	report := s.usage.GetReport(r.Context(), period)
	writeJSON(w, http.StatusOK, usageReportToDTO(&report))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := r.Body
	if s.opts.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage.Used() {
		w.Header().Set(HeaderEmbeddingTokens, strconv.Itoa(usage.TotalTokens()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrUnknownSearchMode,
		domain.ErrRateLimited,
		domain.ErrEmbeddingQuotaExceeded,
		domain.ErrEmbeddingProviderError,
		domain.ErrEmbedderNotConfigured,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, msg)
}
