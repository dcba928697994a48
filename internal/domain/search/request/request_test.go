package request

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/reviewsearch/internal/domain"
)

func TestNew_Blank(t *testing.T) {
	for _, q := range []string{"", " ", "\t\n", "\u3000"} {
		_, err := New(q)
		if !errors.Is(err, domain.ErrEmptyQuery) {
			t.Errorf("New(%q): expected ErrEmptyQuery, got %v", q, err)
		}
	}
}

func TestNew_KeepsQueryAsTyped(t *testing.T) {
	r, err := New("  great battery life ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "  great battery life " {
		t.Errorf("query should not be trimmed, got %q", r.Query())
	}
	if r.Limit() != 100 {
		t.Errorf("expected limit 100, got %d", r.Limit())
	}
}

func TestNew_NormalizesHangul(t *testing.T) {
	decomposed := "\u1100\u1161" // jamo, as sent by some input methods
	r, err := New(decomposed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "\uac00" {
		t.Errorf("expected composed syllable, got %q", r.Query())
	}
}
