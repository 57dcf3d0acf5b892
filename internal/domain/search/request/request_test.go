package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/lexsearch/internal/domain"
	"github.com/kailas-cloud/lexsearch/internal/domain/document"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/mode"
)

func docs() []document.Document {
	return []document.Document{
		document.FromText("a", "alpha"),
		document.New("b", nil, "", ""),
		document.FromText("c", ""),
		document.FromText("d", "delta"),
	}
}

func TestNew_Valid(t *testing.T) {
	r, err := New("hello", mode.Fuzzy, docs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "hello" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Mode() != mode.Fuzzy {
		t.Errorf("Mode() = %q", r.Mode())
	}
	if len(r.Documents()) != 4 {
		t.Errorf("Documents() len = %d", len(r.Documents()))
	}
}

func TestNew_EmptyQuery(t *testing.T) {
	_, err := New("", mode.Exact, docs())
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("error = %q", err)
	}
}

func TestNew_NilDocuments(t *testing.T) {
	_, err := New("q", mode.Exact, nil)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_EmptyDocumentsAllowed(t *testing.T) {
	r, err := New("q", mode.AI, []document.Document{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Searchable()) != 0 {
		t.Errorf("Searchable() = %v", r.Searchable())
	}
}

func TestNew_InvalidMode(t *testing.T) {
	for _, m := range []mode.Mode{"", "semantic", "EXACT"} {
		_, err := New("q", m, docs())
		if !errors.Is(err, domain.ErrUnknownSearchMode) {
			t.Errorf("mode %q: expected ErrUnknownSearchMode, got %v", m, err)
		}
	}
}

func TestSearchable_SkipsMissingContent(t *testing.T) {
	r, err := New("q", mode.Exact, docs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := r.Searchable()
	if len(got) != 2 {
		t.Fatalf("Searchable() len = %d, want 2", len(got))
	}
	if got[0].ID() != "a" || got[1].ID() != "d" {
		t.Errorf("Searchable() ids = %q, %q", got[0].ID(), got[1].ID())
	}
}
