package pdfpage

import (
	"strings"
	"testing"
)

type fakeSplitter struct{}

func (fakeSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.SplitAfter(text, ". ")
}

func TestFormatTextReplacesNewlines(t *testing.T) {
	got := formatText("line one\nline two\n")
	if got != "line one line two" {
		t.Fatalf("formatText() = %q", got)
	}
}

func TestBuildPageStatistics(t *testing.T) {
	page := buildPage(2, "One two. Three four.", fakeSplitter{})

	if page.PageNumber != 2 {
		t.Fatalf("page number = %d, want 2", page.PageNumber)
	}
	if page.CharCount != 20 {
		t.Fatalf("char count = %d, want 20", page.CharCount)
	}
	if page.WordCount != 4 {
		t.Fatalf("word count = %d, want 4", page.WordCount)
	}
	if page.RawSentenceCount != 2 {
		t.Fatalf("raw sentence count = %d, want 2", page.RawSentenceCount)
	}
	// Integer division of the chars/4 heuristic.
	if page.TokenCount != 5 {
		t.Fatalf("token count = %d, want 5", page.TokenCount)
	}
	if len(page.Sentences) == 0 {
		t.Fatalf("expected segmented sentences")
	}
}

func TestBuildPageEmptyText(t *testing.T) {
	page := buildPage(0, "", fakeSplitter{})
	if page.CharCount != 0 || page.TokenCount != 0 {
		t.Fatalf("unexpected counts for empty page: %+v", page)
	}
	if len(page.Sentences) != 0 {
		t.Fatalf("expected no sentences, got %v", page.Sentences)
	}
}
