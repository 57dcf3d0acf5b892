package search

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/kailas-cloud/lexsearch/internal/domain"
	"github.com/kailas-cloud/lexsearch/internal/domain/document"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/mode"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/request"
)

// vocabulary spans the stub embedding space. A text with none of these
// words embeds to the zero vector.
var vocabulary = []string{"breach", "contract", "court", "damages", "evidence", "negligence"}

// stubEmbedder is a deterministic bag-of-words embedder.
type stubEmbedder struct {
	mu       sync.Mutex
	calls    int
	inFlight int
	peak     int

	tokensPerCall int
	// failOn makes Embed fail for texts containing the marker.
	failOn  string
	failErr error
	// blockOn makes Embed wait for context cancellation for texts containing the marker.
	blockOn string
	// hold keeps every call in flight until the channel is closed.
	hold chan struct{}
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	s.mu.Lock()
	s.calls++
	s.inFlight++
	if s.inFlight > s.peak {
		s.peak = s.inFlight
	}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if s.hold != nil {
		select {
		case <-s.hold:
		case <-ctx.Done():
			return domain.EmbeddingResult{}, ctx.Err()
		}
	}
	if s.blockOn != "" && strings.Contains(text, s.blockOn) {
		<-ctx.Done()
		return domain.EmbeddingResult{}, ctx.Err()
	}
	if s.failOn != "" && strings.Contains(text, s.failOn) {
		return domain.EmbeddingResult{}, s.failErr
	}

	lower := strings.ToLower(text)
	vec := make([]float32, len(vocabulary))
	for i, w := range vocabulary {
		vec[i] = float32(strings.Count(lower, w))
	}
	return domain.EmbeddingResult{
		Embedding:   vec,
		TotalTokens: s.tokensPerCall,
	}, nil
}

func (s *stubEmbedder) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubEmbedder) peakInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peak
}

func strPtr(s string) *string { return &s }

func makeRequest(t *testing.T, query string, m mode.Mode, docs ...document.Document) *request.Request {
	t.Helper()
	r, err := request.New(query, m, docs)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &r
}
