// Package pdfpage extracts per-page plain text from PDF files together with
// the page statistics the chunking pipeline records.
package pdfpage

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"contract-rag/internal/core/domain"
	"contract-rag/internal/core/ports"
)

type Extractor struct {
	splitter ports.SentenceSplitter
}

// NewExtractor builds an extractor that segments each page's text with the
// given splitter.
func NewExtractor(splitter ports.SentenceSplitter) *Extractor {
	return &Extractor{splitter: splitter}
}

func (e *Extractor) ExtractPages(ctx context.Context, path string) ([]domain.Page, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUnsupportedFormat, "open pdf", err)
	}
	defer file.Close()

	total := reader.NumPage()
	pages := make([]domain.Page, 0, total)
	for number := 1; number <= total; number++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(number)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract text from page %d: %w", number, err)
		}
		pages = append(pages, buildPage(number-1, formatText(text), e.splitter))
	}
	return pages, nil
}

// buildPage computes the page statistics on the formatted text. Word and raw
// sentence counts deliberately use plain separator splits so they stay
// comparable with previously recorded stores.
func buildPage(pageNumber int, text string, splitter ports.SentenceSplitter) domain.Page {
	charCount := utf8.RuneCountInString(text)
	return domain.Page{
		PageNumber:       pageNumber,
		Text:             text,
		CharCount:        charCount,
		WordCount:        len(strings.Split(text, " ")),
		RawSentenceCount: len(strings.Split(text, ". ")),
		TokenCount:       charCount / 4,
		Sentences:        splitter.Split(text),
	}
}

func formatText(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
}
