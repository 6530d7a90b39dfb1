package ollama

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"contract-rag/internal/core/domain"
	"contract-rag/internal/core/extraction"
)

const extractDateTool = "extract_effective_date"

type chatMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []toolCall `json:"tool_calls,omitempty"`
}

type toolCall struct {
	Function functionCall `json:"function"`
}

type functionCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Answerer produces the final answer. The model is constrained to the
// retrieved context by the system prompt and may request the deterministic
// date extractor instead of answering directly; in that case the extractor
// output is fed back for one more round.
type Answerer struct {
	client *Client
}

func NewAnswerer(client *Client) *Answerer {
	return &Answerer{client: client}
}

func (a *Answerer) Answer(ctx context.Context, query string, results []domain.SimilarityResult) (string, error) {
	messages := []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserPrompt(query, results)},
	}

	first, err := a.chat(ctx, messages, answerTools())
	if err != nil {
		return "", err
	}
	if len(first.ToolCalls) == 0 {
		return first.Content, nil
	}

	call := first.ToolCalls[0]
	if call.Function.Name != extractDateTool {
		slog.Warn("model_requested_unknown_function", "function", call.Function.Name)
		return "The assistant tried to call an unknown function.", nil
	}

	extracted := extraction.DateFromContext(contextFromResults(results), query)
	messages = append(messages, first, chatMessage{
		Role:    "tool",
		Content: extracted,
	})

	final, err := a.chat(ctx, messages, nil)
	if err != nil {
		return "", err
	}
	return final.Content, nil
}

func (a *Answerer) chat(ctx context.Context, messages []chatMessage, tools []map[string]any) (chatMessage, error) {
	request := map[string]any{
		"model":    a.client.genModel,
		"messages": messages,
		"stream":   false,
	}
	if len(tools) > 0 {
		request["tools"] = tools
	}

	var response chatResponse
	if err := a.client.call(ctx, "chat", "/api/chat", request, &response); err != nil {
		return chatMessage{}, err
	}
	response.Message.Content = strings.TrimSpace(response.Message.Content)
	return response.Message, nil
}

// contextFromResults keys the retrieved chunk texts by rank, with
// non-breaking spaces normalized, for the deterministic extractor.
func contextFromResults(results []domain.SimilarityResult) map[string]string {
	context := make(map[string]string, len(results))
	for _, result := range results {
		context[strconv.Itoa(result.Rank)] = cleanContextValue(result.SentenceChunk)
	}
	return context
}

func cleanContextValue(text string) string {
	return strings.ReplaceAll(text, " ", " ")
}

func answerTools() []map[string]any {
	return []map[string]any{
		{
			"type": "function",
			"function": map[string]any{
				"name":        extractDateTool,
				"description": "Extract the effective date from the contract text",
				"parameters": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"effective_date": map[string]any{
							"type":        "string",
							"description": "The effective date of the contract",
						},
					},
					"required": []string{"effective_date"},
				},
			},
		},
	}
}
