package ollama

import (
	"fmt"
	"strings"

	"contract-rag/internal/core/domain"
)

const systemPrompt = `You are a helpful assistant that answers questions about legal contracts based on the provided context.
Break down the question into small parts and answer each part separately.
Do not use any external knowledge or make up information.
If the answer is not in the context, say 'The answer is not found in the provided document.'.`

func buildUserPrompt(query string, results []domain.SimilarityResult) string {
	var contextBuilder strings.Builder
	for _, result := range results {
		contextBuilder.WriteString(fmt.Sprintf(
			"[%d] page=%d score=%.4f\n%s\n\n",
			result.Rank,
			result.PageNumber,
			result.Score,
			cleanContextValue(result.SentenceChunk),
		))
	}

	return fmt.Sprintf("Context:\n%s\nQuestion: %s", contextBuilder.String(), query)
}
