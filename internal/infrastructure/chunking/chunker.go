// Package chunking turns per-page sentence lists into overlapping chunks of
// joined, cleaned text.
package chunking

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"contract-rag/internal/core/domain"
)

// DefaultGroupSpill is the number of sentences each group extends past its
// nominal boundary. Groups step by the chunk size but span chunkSize+spill
// sentences, so consecutive groups share their edge sentences. This overlap
// is a compatibility contract with previously built stores; change it only
// together with a full re-ingest.
const DefaultGroupSpill = 2

// Inserts the missing space after a full stop glued to an uppercase letter,
// e.g. "end.Next" -> "end. Next".
var boundaryRepair = regexp.MustCompile(`\.([A-Z])`)

type SentenceChunker struct {
	chunkSize  int
	groupSpill int
}

func NewSentenceChunker(chunkSize int) *SentenceChunker {
	if chunkSize <= 0 {
		chunkSize = 10
	}
	return &SentenceChunker{
		chunkSize:  chunkSize,
		groupSpill: DefaultGroupSpill,
	}
}

// Chunk emits chunks in page order and, within a page, in sentence order.
// Pages without sentences contribute nothing.
func (c *SentenceChunker) Chunk(pages []domain.Page) []domain.Chunk {
	var chunks []domain.Chunk
	for _, page := range pages {
		for _, group := range sentenceGroups(page.Sentences, c.chunkSize, c.groupSpill) {
			text := joinAndClean(group)
			if text == "" {
				continue
			}
			charCount := utf8.RuneCountInString(text)
			chunks = append(chunks, domain.Chunk{
				PageNumber:    page.PageNumber,
				SentenceChunk: text,
				CharCount:     charCount,
				WordCount:     len(strings.Split(text, " ")),
				TokenCount:    float64(charCount) / 4,
			})
		}
	}
	return chunks
}

// sentenceGroups slices the sentence list into groups of size+spill
// elements, stepping by size. The final group may be shorter.
func sentenceGroups(sentences []string, size, spill int) [][]string {
	var groups [][]string
	for start := 0; start < len(sentences); start += size {
		end := start + size + spill
		if end > len(sentences) {
			end = len(sentences)
		}
		groups = append(groups, sentences[start:end])
	}
	return groups
}

// joinAndClean joins a sentence group with single spaces, de-doubles spaces
// in one pass and repairs missing spacing at sentence boundaries.
func joinAndClean(group []string) string {
	joined := strings.TrimSpace(strings.ReplaceAll(strings.Join(group, " "), "  ", " "))
	return boundaryRepair.ReplaceAllString(joined, ". $1")
}
