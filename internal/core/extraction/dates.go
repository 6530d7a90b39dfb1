// Package extraction holds the deterministic side-channel extractors used
// for hallucination mitigation. They run without a model round-trip and are
// unit-testable in isolation.
package extraction

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// DateNotFound is returned when the query asks for a date but none of
	// the context values contains a recognizable one.
	DateNotFound = "Date not found in the provided context."
	// InformationNotFound is returned when the query does not mention a date
	// at all.
	InformationNotFound = "Information not found."
)

// The five recognized date shapes, tried in order per context value:
// "January 1, 2023", "01/01/2023", "01-01-2023", "2023-01-01", "1 January 2023".
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\w+\s\d{1,2},\s\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s\w+\s\d{4}\b`),
}

// DateFromContext scans the retrieved context for a date when the query asks
// for one. It returns the first match; context keys are visited in rank
// order (numeric keys ascending, with "2" before "10") so the most relevant
// chunk wins and repeated calls over the same map are deterministic.
func DateFromContext(context map[string]string, query string) string {
	if !strings.Contains(strings.ToLower(query), "date") {
		return InformationNotFound
	}

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(a, b int) bool {
		return compareRankKeys(keys[a], keys[b])
	})

	for _, key := range keys {
		value := context[key]
		for _, pattern := range datePatterns {
			if match := pattern.FindString(value); match != "" {
				return match
			}
		}
	}
	return DateNotFound
}

// compareRankKeys orders numeric keys by value and falls back to plain
// string order when either key is not a number.
func compareRankKeys(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
