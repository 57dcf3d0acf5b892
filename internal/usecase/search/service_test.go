package search

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/lexsearch/internal/domain"
	"github.com/kailas-cloud/lexsearch/internal/domain/document"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/mode"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/result"
)

const contractDoc = `FACTS

The plaintiff alleges breach of contract and seeks damages. See 123 Cal.App.4d 456.

ARGUMENTS

The court should award damages for the breach of contract.`

const negligenceDoc = `The defendant denies negligence. Nothing was lodged on March 3, 2023.`

// --- Exact ---

func TestSearch_Exact_BreachOfContract(t *testing.T) {
	svc := New(nil, Config{})
	req := makeRequest(t, "breach of contract", mode.Exact,
		document.FromText("d1", "...the breach of contract claim was filed..."))

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	r := resp.Results[0]
	if r.Text() != "breach of contract" {
		t.Errorf("text = %q", r.Text())
	}
	if r.Relevance() != 1 {
		t.Errorf("relevance = %v, want 1", r.Relevance())
	}
	if r.Context() != "...the breach of contract claim was filed..." {
		t.Errorf("context = %q", r.Context())
	}
	if r.Metadata() != nil {
		t.Error("exact results carry no metadata")
	}
}

func TestSearch_Exact_PreservesCaseAndWindow(t *testing.T) {
	prefix := strings.Repeat("a", 150)
	suffix := strings.Repeat("z", 150)
	content := prefix + "Breach Of Contract" + suffix

	svc := New(nil, Config{})
	req := makeRequest(t, "breach of contract", mode.Exact, document.FromText("d1", content))

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := resp.Results[0]
	if r.Text() != "Breach Of Contract" {
		t.Errorf("text = %q", r.Text())
	}
	want := content[50 : 150+len("Breach Of Contract")+100]
	if r.Context() != want {
		t.Errorf("context length = %d, want %d", len(r.Context()), len(want))
	}
}

func TestSearch_Exact_InputOrderAndFiltering(t *testing.T) {
	svc := New(nil, Config{})
	req := makeRequest(t, "court", mode.Exact,
		document.FromText("b", "the court held"),
		document.New("null", nil, "", ""),
		document.FromText("miss", "nothing here"),
		document.FromText("a", "COURT of appeal"),
	)

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := ids(resp.Results)
	if !reflect.DeepEqual(ids, []string{"b", "a"}) {
		t.Errorf("ids = %v, want [b a]", ids)
	}
	if len(resp.Failures) != 0 {
		t.Errorf("expected no failures, got %v", resp.Failures)
	}
}

// --- Semantic ---

func TestSearch_Semantic_RanksAndDecorates(t *testing.T) {
	embed := &stubEmbedder{}
	svc := New(embed, Config{})
	req := makeRequest(t, "breach of contract damages", mode.Fuzzy,
		document.New("neg", strPtr(negligenceDoc), "Motion", ""),
		document.New("null", nil, "", ""),
		document.New("contract", strPtr(contractDoc), "Complaint", ""),
	)

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// negligenceDoc shares no vocabulary with the query, so it scores 0
	// and still appears last.
	if got := ids(resp.Results); !reflect.DeepEqual(got, []string{"contract", "neg"}) {
		t.Fatalf("ids = %v, want [contract neg]", got)
	}
	assertDescending(t, resp.Results)

	top := resp.Results[0]
	if top.Text() != top.Context() {
		t.Errorf("text and context differ: %q vs %q", top.Text(), top.Context())
	}
	if top.Section() != "FACTS" {
		t.Errorf("section = %q, want FACTS", top.Section())
	}
	if !strings.HasPrefix(top.Text(), "FACTS:\n") {
		t.Errorf("text = %q, want FACTS prefix", top.Text())
	}
	md := top.Metadata()
	if md == nil {
		t.Fatal("expected metadata")
	}
	if md.CaseNumber != "123 Cal.App.4d 456" {
		t.Errorf("case number = %q", md.CaseNumber)
	}

	neg := resp.Results[1]
	if neg.Text() != "" || neg.Section() != "" {
		t.Errorf("zero-scoring chunks should leave an empty snippet, got %q/%q", neg.Text(), neg.Section())
	}
	if neg.Metadata().DocumentType != "Motion" {
		t.Errorf("document type = %q, want caller fallback Motion", neg.Metadata().DocumentType)
	}
}

func TestSearch_Semantic_FuzzyEqualsAI(t *testing.T) {
	docs := []document.Document{
		document.FromText("a", contractDoc),
		document.FromText("b", "Evidence of damages before the court."),
	}
	svc := New(&stubEmbedder{}, Config{})

	fuzzy, err := svc.Search(context.Background(), makeRequest(t, "court damages", mode.Fuzzy, docs...))
	if err != nil {
		t.Fatalf("fuzzy: %v", err)
	}
	ai, err := svc.Search(context.Background(), makeRequest(t, "court damages", mode.AI, docs...))
	if err != nil {
		t.Fatalf("ai: %v", err)
	}
	if !reflect.DeepEqual(fuzzy, ai) {
		t.Error("fuzzy and ai responses differ")
	}
}

func TestSearch_Semantic_Idempotent(t *testing.T) {
	docs := []document.Document{
		document.FromText("a", contractDoc),
		document.FromText("b", negligenceDoc),
		document.FromText("c", "Damages. Damages. The court."),
	}
	svc := New(&stubEmbedder{}, Config{MaxConcurrency: 3})

	first, err := svc.Search(context.Background(), makeRequest(t, "damages evidence", mode.AI, docs...))
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	for i := range 5 {
		next, err := svc.Search(context.Background(), makeRequest(t, "damages evidence", mode.AI, docs...))
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d differs from first", i)
		}
	}
}

func TestSearch_Semantic_TiesKeepInputOrder(t *testing.T) {
	svc := New(&stubEmbedder{}, Config{MaxConcurrency: 4})
	req := makeRequest(t, "court", mode.Fuzzy,
		document.FromText("first", "The court."),
		document.FromText("second", "The court."),
		document.FromText("third", "The court."),
	)

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(resp.Results); !reflect.DeepEqual(got, []string{"first", "second", "third"}) {
		t.Errorf("ids = %v", got)
	}
}

func TestSearch_Semantic_ZeroVectorExcluded(t *testing.T) {
	svc := New(&stubEmbedder{}, Config{})
	req := makeRequest(t, "court", mode.Fuzzy,
		document.FromText("empty-vocab", "Lorem ipsum dolor sit amet."),
		document.FromText("court", "The court."),
	)

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(resp.Results); !reflect.DeepEqual(got, []string{"court"}) {
		t.Errorf("ids = %v, want [court]", got)
	}
	if len(resp.Failures) != 0 {
		t.Errorf("zero vectors are not failures: %v", resp.Failures)
	}
}

func TestSearch_Semantic_NullContentNeverEmbedded(t *testing.T) {
	embed := &stubEmbedder{}
	svc := New(embed, Config{})
	req := makeRequest(t, "court", mode.AI,
		document.New("nil", nil, "", ""),
		document.New("empty", strPtr(""), "", ""),
	)

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 0 || len(resp.Failures) != 0 {
		t.Errorf("expected empty response, got %+v", resp)
	}
	if embed.callCount() != 1 {
		t.Errorf("expected only the query to be embedded, got %d calls", embed.callCount())
	}
}

func TestSearch_Semantic_IsolatesFailures(t *testing.T) {
	embed := &stubEmbedder{failOn: "POISON", failErr: domain.ErrEmbeddingProviderError}
	svc := New(embed, Config{FailurePolicy: FailureIsolate})
	req := makeRequest(t, "court", mode.Fuzzy,
		document.FromText("ok", "The court."),
		document.FromText("bad", "POISON court"),
	)

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(resp.Results); !reflect.DeepEqual(got, []string{"ok"}) {
		t.Errorf("ids = %v, want [ok]", got)
	}
	if got := resp.FailedIDs(); !reflect.DeepEqual(got, []string{"bad"}) {
		t.Errorf("failed = %v, want [bad]", got)
	}
	if resp.Failures[0].Reason == "" {
		t.Error("expected failure reason")
	}
}

func TestSearch_Semantic_AbortOnFailure(t *testing.T) {
	embed := &stubEmbedder{failOn: "POISON", failErr: domain.ErrEmbeddingProviderError}
	svc := New(embed, Config{FailurePolicy: FailureAbort})
	req := makeRequest(t, "court", mode.Fuzzy,
		document.FromText("ok", "The court."),
		document.FromText("bad", "POISON court"),
	)

	_, err := svc.Search(context.Background(), req)
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Errorf("error should name the document: %v", err)
	}
}

func TestSearch_Semantic_QueryFailureIsFatal(t *testing.T) {
	embed := &stubEmbedder{failOn: "court", failErr: domain.ErrEmbeddingProviderError}
	svc := New(embed, Config{FailurePolicy: FailureIsolate})
	req := makeRequest(t, "court", mode.AI, document.FromText("a", "evidence"))

	_, err := svc.Search(context.Background(), req)
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
	if embed.callCount() != 1 {
		t.Errorf("documents must not be embedded after a query failure, got %d calls", embed.callCount())
	}
}

func TestSearch_Semantic_NoEmbedder(t *testing.T) {
	svc := New(nil, Config{})
	_, err := svc.Search(context.Background(), makeRequest(t, "court", mode.Fuzzy, document.FromText("a", "court")))
	if !errors.Is(err, domain.ErrEmbedderNotConfigured) {
		t.Fatalf("expected ErrEmbedderNotConfigured, got %v", err)
	}
}

func TestSearch_Semantic_RecordsUsage(t *testing.T) {
	svc := New(&stubEmbedder{tokensPerCall: 3}, Config{})
	ctx, usage := domain.NewContextWithUsage(context.Background())

	// query + whole document + one chunk
	_, err := svc.Search(ctx, makeRequest(t, "court", mode.Fuzzy, document.FromText("a", "The court.")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage.TotalTokens() != 9 {
		t.Errorf("tokens = %d, want 9", usage.TotalTokens())
	}
}

func TestSearch_Semantic_BoundsConcurrency(t *testing.T) {
	embed := &stubEmbedder{hold: make(chan struct{})}
	svc := New(embed, Config{MaxConcurrency: 2})

	docs := make([]document.Document, 6)
	for i := range docs {
		docs[i] = document.FromText(fmt.Sprintf("d%d", i), "The court.")
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(embed.hold)
	}()
	_, err := svc.Search(context.Background(), makeRequest(t, "court", mode.Fuzzy, docs...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := embed.peakInFlight(); p > 2 {
		t.Errorf("peak in-flight = %d, want <= 2", p)
	}
}

func TestSearch_Semantic_TimeoutReportsPendingDocuments(t *testing.T) {
	embed := &stubEmbedder{blockOn: "SLOW"}
	svc := New(embed, Config{Timeout: 50 * time.Millisecond})
	req := makeRequest(t, "court", mode.Fuzzy,
		document.FromText("fast", "The court."),
		document.FromText("slow", "SLOW court"),
	)

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(resp.Results); !reflect.DeepEqual(got, []string{"fast"}) {
		t.Errorf("ids = %v, want [fast]", got)
	}
	if got := resp.FailedIDs(); !reflect.DeepEqual(got, []string{"slow"}) {
		t.Errorf("failed = %v, want [slow]", got)
	}
}

func TestSearch_Semantic_CallerCancel(t *testing.T) {
	embed := &stubEmbedder{blockOn: "SLOW"}
	svc := New(embed, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := svc.Search(ctx, makeRequest(t, "court", mode.Fuzzy, document.FromText("slow", "SLOW court")))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	svc := New(nil, Config{MaxConcurrency: -1, FailurePolicy: "bogus"})
	if svc.cfg.MaxConcurrency != DefaultMaxConcurrency {
		t.Errorf("max concurrency = %d", svc.cfg.MaxConcurrency)
	}
	if svc.cfg.FailurePolicy != FailureIsolate {
		t.Errorf("failure policy = %q", svc.cfg.FailurePolicy)
	}
}

// --- helpers ---

func ids(results []result.Result) []string {
	out := make([]string, len(results))
	for i := range results {
		out[i] = results[i].ID()
	}
	return out
}

func assertDescending(t *testing.T, results []result.Result) {
	t.Helper()
	for i := 1; i < len(results); i++ {
		if results[i-1].Relevance() < results[i].Relevance() {
			t.Errorf("results[%d] (%v) < results[%d] (%v)", i-1, results[i-1].Relevance(), i, results[i].Relevance())
		}
	}
}
