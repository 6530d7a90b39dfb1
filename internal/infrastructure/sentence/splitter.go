// Package sentence provides lightweight rule-based sentence segmentation for
// extracted page text.
package sentence

import (
	"regexp"
	"strings"
)

// Splitter cuts text at terminal punctuation. It is intentionally simple: a
// run of non-terminal characters followed by '.', '!' or '?' is one
// sentence; a trailing run without terminal punctuation is kept as the last
// sentence so no text is lost.
type Splitter struct {
	pattern *regexp.Regexp
}

func NewSplitter() *Splitter {
	return &Splitter{
		pattern: regexp.MustCompile(`[^.!?]+[.!?]`),
	}
}

func (s *Splitter) Split(text string) []string {
	var sentences []string
	last := 0
	for _, loc := range s.pattern.FindAllStringIndex(text, -1) {
		if sent := strings.TrimSpace(text[loc[0]:loc[1]]); sent != "" {
			sentences = append(sentences, sent)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
